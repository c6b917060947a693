// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestMonitoring(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Monitoring")
}

func gaugeValue(g prometheus.Gauge) float64 {
	var m dto.Metric
	Expect(g.Write(&m)).To(Succeed())
	return m.GetGauge().GetValue()
}

var _ = Describe("Register", func() {
	It("registers every metric without panicking", func() {
		reg := prometheus.NewRegistry()
		Expect(func() { Register(reg) }).ToNot(Panic())
	})
})

var _ = Describe("counters and gauges", func() {
	It("reflects SetRegisteredDevices", func() {
		SetRegisteredDevices(7)
		Expect(gaugeValue(registeredDevices)).To(Equal(7.0))
	})

	It("reflects per-id queue depth independently", func() {
		SetQueueDepth(1, 3)
		SetQueueDepth(2, 9)
		Expect(gaugeValue(queueDepth.WithLabelValues(idLabel(1)))).To(Equal(3.0))
		Expect(gaugeValue(queueDepth.WithLabelValues(idLabel(2)))).To(Equal(9.0))
	})

	It("accepts routed/dropped/discovered/retired increments without panicking", func() {
		Expect(func() {
			IncFramesRouted()
			IncFramesDropped(ReasonFull)
			IncDevicesDiscovered()
			IncDevicesRetired()
		}).ToNot(Panic())
	})
})

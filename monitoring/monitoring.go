// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package monitoring defines the hub's Prometheus instrumentation.
//
// Grounded on device/monitoring.go and proxy/monitoring.go's
// RegisterMonitoring(prometheus.Registerer) pattern in the teacher repo: a
// package-scope set of gauges/counters, registered once by the caller at
// startup, updated by the hub as it runs.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var (
	registeredDevices = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rawhidhub_registered_devices",
		Help: "Count of devices currently holding an assigned id.",
	})

	queueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rawhidhub_queue_depth",
		Help: "Number of frames currently queued for a destination id.",
	}, []string{"id"})

	framesRouted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rawhidhub_frames_routed_total",
		Help: "Count of device-to-device message frames successfully routed.",
	})

	framesDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rawhidhub_frames_dropped_total",
		Help: "Count of frames dropped, by reason.",
	}, []string{"reason"})

	devicesDiscovered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rawhidhub_devices_discovered_total",
		Help: "Count of raw HID interfaces opened by the discovery task.",
	})

	devicesRetired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rawhidhub_devices_retired_total",
		Help: "Count of device records torn down by the discovery task.",
	})
)

// Drop reasons, mirroring spec.md §7's error taxonomy.
const (
	ReasonMalformed      = "malformed"
	ReasonFull           = "registrar_full"
	ReasonNoRoute        = "no_route"
	ReasonBackendWrite   = "backend_write_failed"
	ReasonBackendOpen    = "backend_open_failed"
)

// Register registers every metric in this package with reg. Call once,
// during startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		registeredDevices,
		queueDepth,
		framesRouted,
		framesDropped,
		devicesDiscovered,
		devicesRetired,
	)
}

// SetRegisteredDevices records the current registrar membership count.
func SetRegisteredDevices(n int) { registeredDevices.Set(float64(n)) }

// RegisteredDevices returns the most recently recorded registered-device
// count. Safe to call from any goroutine: the registrar itself is touched
// only by the I/O loop (spec.md §5), so other goroutines — e.g. a periodic
// stats logger — must read this gauge instead of reaching into the
// registrar directly. prometheus.Gauge guards its value independently of
// the caller, the same way it's safe for an HTTP scraper to read while the
// I/O loop concurrently calls SetRegisteredDevices.
func RegisteredDevices() int {
	var m dto.Metric
	if err := registeredDevices.Write(&m); err != nil {
		return 0
	}
	return int(m.GetGauge().GetValue())
}

// SetQueueDepth records the current depth of the queue for id.
func SetQueueDepth(id byte, depth int) {
	queueDepth.WithLabelValues(idLabel(id)).Set(float64(depth))
}

// IncFramesRouted records one successfully-routed device-to-device frame.
func IncFramesRouted() { framesRouted.Inc() }

// IncFramesDropped records one frame dropped for reason.
func IncFramesDropped(reason string) { framesDropped.WithLabelValues(reason).Inc() }

// IncDevicesDiscovered records one newly-opened interface.
func IncDevicesDiscovered() { devicesDiscovered.Inc() }

// IncDevicesRetired records one torn-down device record.
func IncDevicesRetired() { devicesRetired.Inc() }

func idLabel(id byte) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[id>>4], hex[id&0xF]})
}

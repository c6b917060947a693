// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package logging

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestLogging(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logging")
}

var _ = Describe("Must", func() {
	It("returns Nop when given nil", func() {
		Expect(Must(nil)).To(Equal(Nop))
	})

	It("returns the supplied logger when non-nil", func() {
		l := NewStdLogger(0)
		Expect(Must(l)).To(BeIdenticalTo(l))
	})
})

var _ = Describe("Nop", func() {
	It("never panics for any call", func() {
		Expect(func() {
			Nop.Error("x")
			Nop.Warn("x")
			Nop.Info("x")
			Nop.Debug("x")
			Nop.Errorf("%s", "x")
			Nop.Warnf("%s", "x")
			Nop.Infof("%s", "x")
			Nop.Debugf("%s", "x")
		}).ToNot(Panic())
	})
})

// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package backend_test

import (
	"testing"

	"github.com/eynsai/raw-hid-hub/backend"
	"github.com/eynsai/raw-hid-hub/backend/backendtest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestBackend(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Backend")
}

var _ = Describe("backendtest.Backend", func() {
	It("satisfies the Backend contract end to end", func() {
		b := backendtest.NewBackend()
		dev := b.AddDevice("p1", 0xFF60, 0x61)

		infos, err := b.Enumerate()
		Expect(err).ToNot(HaveOccurred())
		Expect(infos).To(ConsistOf(backend.DeviceInfo{
			Path: "p1", UsagePage: 0xFF60, Usage: 0x61,
		}))

		opened, err := b.Open("p1")
		Expect(err).ToNot(HaveOccurred())

		dev.Send([]byte{1, 2, 3})
		buf := make([]byte, 32)
		n, err := opened.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf[:n]).To(Equal([]byte{1, 2, 3}))

		n, err = opened.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(0))

		_, err = opened.Write([]byte{9, 9})
		Expect(err).ToNot(HaveOccurred())
		Expect(dev.Sent()).To(ConsistOf([]byte{9, 9}))

		Expect(opened.Close()).To(Succeed())
	})

	It("stops enumerating a removed device", func() {
		b := backendtest.NewBackend()
		b.AddDevice("p1", 0xFF60, 0x61)
		b.RemoveDevice("p1")

		infos, err := b.Enumerate()
		Expect(err).ToNot(HaveOccurred())
		Expect(infos).To(BeEmpty())
	})
})

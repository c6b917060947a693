// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package frame

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestFrame(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Frame")
}

var _ = Describe("Classify", func() {
	It("discards frames with the wrong command id", func() {
		var f Frame
		f[0] = 0x00
		kind, _ := Classify(f)
		Expect(kind).To(Equal(Discard))
	})

	It("recognizes a registration frame", func() {
		kind, _ := Classify(NewRegistration())
		Expect(kind).To(Equal(Registration))
	})

	It("recognizes an unregistration frame", func() {
		kind, _ := Classify(NewUnregistration())
		Expect(kind).To(Equal(Unregistration))
	})

	It("discards a hub-directed frame with an unrecognized sub-command", func() {
		f := NewRegistration()
		f[2] = 0x42
		kind, _ := Classify(f)
		Expect(kind).To(Equal(Discard))
	})

	It("recognizes a device-addressed message and reports its destination", func() {
		f := NewMessage(0x02, []byte{0x10, 0x11})
		kind, dest := Classify(f)
		Expect(kind).To(Equal(Message))
		Expect(dest).To(Equal(byte(0x02)))
	})
})

var _ = Describe("Rewrite", func() {
	It("overwrites byte 1 and leaves the rest untouched", func() {
		orig := NewMessage(0x02, []byte{0x10, 0x11, 0x12})
		rewritten := Rewrite(orig, 0x01)

		Expect(rewritten[1]).To(Equal(byte(0x01)))
		Expect(rewritten[2:]).To(Equal(orig[2:]))
		// original is untouched.
		Expect(orig[1]).To(Equal(byte(0x02)))
	})
})

var _ = Describe("BuildStatus", func() {
	// Scenario 1 from spec.md §8: sole registrant.
	It("places the lone recipient id at byte 2", func() {
		f := BuildStatus(1, []byte{1})
		Expect(f[0]).To(Equal(CommandID))
		Expect(f[1]).To(Equal(Hub))
		Expect(f[2]).To(Equal(byte(1)))
		for _, b := range f[3:] {
			Expect(b).To(Equal(Unassigned))
		}
	})

	// Scenario 2: two-member broadcast, one frame per recipient.
	It("orders the recipient first and leaves others after, for each recipient", func() {
		toA := BuildStatus(1, []byte{1, 2})
		Expect(toA[2]).To(Equal(byte(1)))
		Expect(toA[3]).To(Equal(byte(2)))

		toB := BuildStatus(2, []byte{1, 2})
		Expect(toB[2]).To(Equal(byte(2)))
		Expect(toB[3]).To(Equal(byte(1)))
	})

	// Scenario 5: three members, one drops; survivors see each other.
	It("reorders correctly after a removal leaves a non-contiguous id set", func() {
		toA := BuildStatus(1, []byte{1, 3})
		Expect(toA[2]).To(Equal(byte(1)))
		Expect(toA[3]).To(Equal(byte(3)))

		toC := BuildStatus(3, []byte{1, 3})
		Expect(toC[2]).To(Equal(byte(3)))
		Expect(toC[3]).To(Equal(byte(1)))
	})

	It("pads all bytes beyond the assigned set with Unassigned", func() {
		f := BuildStatus(5, []byte{5, 6, 7})
		for i := 5; i < Size; i++ {
			Expect(f[i]).To(Equal(Unassigned))
		}
	})
})

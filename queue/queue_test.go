// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package queue

import (
	"testing"

	"github.com/eynsai/raw-hid-hub/frame"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestQueue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Queue")
}

var _ = Describe("Queues", func() {
	var q *Queues
	BeforeEach(func() {
		q = &Queues{}
	})

	It("pops nothing from an empty queue", func() {
		_, ok := q.Pop(1)
		Expect(ok).To(BeFalse())
		Expect(q.Len(1)).To(Equal(0))
	})

	It("delivers frames in FIFO order", func() {
		f1 := frame.NewMessage(1, []byte{1})
		f2 := frame.NewMessage(1, []byte{2})
		f3 := frame.NewMessage(1, []byte{3})

		q.Push(1, f1)
		q.Push(1, f2)
		q.Push(1, f3)
		Expect(q.Len(1)).To(Equal(3))

		got, ok := q.Pop(1)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(f1))

		got, ok = q.Pop(1)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(f2))

		got, ok = q.Pop(1)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(f3))

		_, ok = q.Pop(1)
		Expect(ok).To(BeFalse())
	})

	It("keeps per-destination queues independent", func() {
		q.Push(1, frame.NewMessage(1, []byte{1}))
		q.Push(2, frame.NewMessage(2, []byte{2}))

		Expect(q.Len(1)).To(Equal(1))
		Expect(q.Len(2)).To(Equal(1))

		q.Clear(1)
		Expect(q.Len(1)).To(Equal(0))
		Expect(q.Len(2)).To(Equal(1))
	})
})

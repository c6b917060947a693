// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package queue implements the hub's per-destination outgoing FIFOs,
// spec.md §3's OutgoingQueue[0..254].
//
// Queues are touched only by the I/O loop, so no synchronization is needed;
// the type exists to keep that 255-way fan-out and its FIFO discipline in
// one place rather than spreading it into the I/O loop directly, echoing
// the teacher's support/bufferpool package's role of owning a shared
// resource with clear single-writer discipline (simplified here since
// frames are fixed 32-byte arrays that need no pooling).
package queue

import (
	"container/list"

	"github.com/eynsai/raw-hid-hub/frame"
)

// Queues holds one FIFO per destination id in [0, 254].
type Queues struct {
	fifos [frame.Hub]list.List // indices 0..254; frame.Hub (255) is never a valid destination.
}

// Push appends f to the queue for destination id.
func (q *Queues) Push(id byte, f frame.Frame) {
	q.fifos[id].PushBack(f)
}

// Pop removes and returns the oldest frame queued for id, if any.
func (q *Queues) Pop(id byte) (frame.Frame, bool) {
	fifo := &q.fifos[id]
	front := fifo.Front()
	if front == nil {
		return frame.Frame{}, false
	}
	fifo.Remove(front)
	return front.Value.(frame.Frame), true
}

// Len reports how many frames are currently queued for id.
func (q *Queues) Len(id byte) int {
	return q.fifos[id].Len()
}

// Clear discards every frame queued for id. Called when id's owner
// unregisters.
func (q *Queues) Clear(id byte) {
	q.fifos[id].Init()
}

// Reset discards every frame in every queue. Used only during hub
// shutdown.
func (q *Queues) Reset() {
	for i := range q.fifos {
		q.fifos[i].Init()
	}
}

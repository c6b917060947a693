// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package hub

import (
	"context"

	"github.com/eynsai/raw-hid-hub/devicetable"
	"github.com/eynsai/raw-hid-hub/frame"
	"github.com/eynsai/raw-hid-hub/monitoring"
)

// RunIO is Agent I (spec.md §4.5, §5): the single-threaded read/route/write
// cycle over the device table. It runs on the caller's goroutine — the
// teacher's main-thread convention — and never blocks except in its tail
// sleep and in the occasional backend write syscall.
//
// RunIO returns once ctx is done and the shutdown sequence (spec.md §4.5
// "Shutdown") has completed.
func (h *Hub) RunIO(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			h.shutdown()
			return
		}

		h.ioPass()
		h.table.SignalIterationComplete()
		h.sleep()
	}
}

func (h *Hub) ioPass() {
	for r := h.table.First(); r != nil; r = r.Next() {
		if r.MarkedForUnregistration() {
			h.handleUnregistration(r)
			r.MarkForDeletion()
			continue
		}

		h.drainInbound(r)

		if h.reg.MembershipChanged() {
			h.broadcastStatus()
			h.reg.ClearMembershipChanged()
		}

		if r.ID() != frame.Unassigned {
			h.drainOutbound(r)
		}
	}

	monitoring.SetRegisteredDevices(h.reg.Count())
}

// drainInbound repeatedly performs non-blocking reads on r's handle until
// none are available, routing each frame as it's read (spec.md §4.5 step 2:
// a device's frames are fully routed before the next device is serviced).
func (h *Hub) drainInbound(r *devicetable.Record) {
	var buf [frame.Size]byte
	for {
		n, err := r.Handle().Read(buf[:])
		if err != nil {
			// Read failure is treated as "device gone"; the record stays
			// open until discovery notices its absence (spec.md §7).
			return
		}
		if n == 0 {
			return
		}

		var f frame.Frame
		copy(f[:], buf[:n])
		h.classifyAndRoute(r, f)
	}
}

// broadcastStatus enqueues a status frame to every currently-assigned id.
func (h *Hub) broadcastStatus() {
	for _, id := range h.reg.AssignedIDs() {
		h.queues.Push(id, h.reg.BuildStatus(id))
	}
}

// drainOutbound writes every frame currently queued for r's id through the
// backend, prepending the one-byte report id spec.md §4.5/§6 require.
func (h *Hub) drainOutbound(r *devicetable.Record) {
	id := r.ID()
	for {
		f, ok := h.queues.Pop(id)
		if !ok {
			break
		}
		h.writeFrame(r, f)
	}
	monitoring.SetQueueDepth(id, h.queues.Len(id))
}

func (h *Hub) writeFrame(r *devicetable.Record, f frame.Frame) {
	var buf [1 + frame.Size]byte
	copy(buf[1:], f[:])

	if _, err := r.Handle().Write(buf[:]); err != nil {
		h.logger.Warnf("write to %q failed: %s", r.Path(), err)
		monitoring.IncFramesDropped(monitoring.ReasonBackendWrite)
	}
}

// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package hub

import "github.com/eynsai/raw-hid-hub/frame"

// shutdown implements spec.md §4.5's cooperative termination sequence: send
// a hub-shutdown frame to every currently-registered device via a direct
// backend write (bypassing the outgoing queues), stop the discovery task,
// release every record, clear every queue, and finalize the backend.
//
// Discovery observes the same ctx cancellation RunIO does (the caller is
// expected to pass both agents the same context), but it may be mid-handshake
// in AwaitFreshIteration when that happens — ctx cancellation aborts that
// wait, but shutdown must still confirm the discovery task has actually
// returned before it starts closing handles and resetting the table, since
// both are otherwise discovery-owned (spec.md §4.1). h.discoveryWG.Wait
// provides that confirmation: RunDiscovery registers itself on entry, so
// this blocks until it has exited, and returns immediately if RunDiscovery
// was never started at all.
func (h *Hub) shutdown() {
	shutdownFrame := frame.NewShutdown()

	for r := h.table.First(); r != nil; r = r.Next() {
		if r.ID() == frame.Unassigned {
			continue
		}
		h.writeFrame(r, shutdownFrame)
	}

	h.discoveryWG.Wait()

	for r := h.table.First(); r != nil; r = r.Next() {
		if err := r.Handle().Close(); err != nil {
			h.logger.Warnf("closing %q failed: %s", r.Path(), err)
		}
	}

	h.table.Reset()
	h.queues.Reset()

	if err := h.be.Close(); err != nil {
		h.logger.Warnf("finalizing backend failed: %s", err)
	}
}

// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package hub

import (
	"context"
	"time"

	"github.com/eynsai/raw-hid-hub/devicetable"
	"github.com/eynsai/raw-hid-hub/frame"
	"github.com/eynsai/raw-hid-hub/monitoring"
)

// RunDiscovery is Agent D (spec.md §4.4, §5): a background loop reconciling
// the device table with the backend's current enumeration once per
// DiscoveryPeriod. It blocks until ctx is done and then returns, after
// finishing any pass already in progress — termination is cooperative, not
// synchronous with the I/O loop (spec.md §5).
//
// Run RunDiscovery on its own goroutine; it never returns early on error,
// matching spec.md §7's policy that enumeration/open failures are logged
// and retried implicitly on the next pass.
func (h *Hub) RunDiscovery(ctx context.Context) {
	h.discoveryWG.Add(1)
	defer h.discoveryWG.Done()

	h.discoveryPass(ctx)

	ticker := time.NewTicker(h.cfg.DiscoveryPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.discoveryPass(ctx)
		}
	}
}

func (h *Hub) discoveryPass(ctx context.Context) {
	for r := h.table.First(); r != nil; r = r.Next() {
		r.SetSeenThisEnumeration(false)
	}

	infos, err := h.be.Enumerate()
	if err != nil {
		h.logger.Warnf("enumerate failed: %s", err)
		return
	}

	for _, info := range infos {
		if info.UsagePage != frame.QMKUsagePage || info.Usage != frame.QMKUsage {
			continue
		}

		rec := h.findByPath(info.Path)
		switch {
		case rec != nil && !rec.MarkedForUnregistration():
			rec.SetSeenThisEnumeration(true)

		case rec != nil:
			// A record for this path exists but is already being torn down;
			// leave it alone until discovery retires it, then it will look
			// brand new on a later pass.

		default:
			dev, err := h.be.Open(info.Path)
			if err != nil {
				h.logger.Warnf("opening %q failed: %s", info.Path, err)
				monitoring.IncFramesDropped(monitoring.ReasonBackendOpen)
				continue
			}
			h.table.Append(devicetable.NewRecord(dev, info.Path))
			monitoring.IncDevicesDiscovered()
			h.logger.Infof("discovered device at %q", info.Path)
		}
	}

	h.retireUnseen(ctx)
}

func (h *Hub) findByPath(path string) *devicetable.Record {
	for r := h.table.First(); r != nil; r = r.Next() {
		if r.Path() == path {
			return r
		}
	}
	return nil
}

// retireUnseen implements spec.md §4.4 step 4: any record not observed in
// the enumeration just completed is either physically removed (if the I/O
// loop has already unregistered it) or flagged for the I/O loop to
// unregister at its next visit.
func (h *Hub) retireUnseen(ctx context.Context) {
	var prev *devicetable.Record
	for r := h.table.First(); r != nil; {
		next := r.Next()

		if r.SeenThisEnumeration() {
			prev = r
			r = next
			continue
		}

		if r.MarkedForDeletion() {
			h.table.Unlink(prev, r)
			if !h.table.AwaitFreshIteration(h.cfg.HandshakeStep, ctx.Done()) {
				// Shutdown cut the handshake short: the I/O loop has already
				// stopped signaling, so there's no further pass to wait for.
				// r is already unlinked, so the I/O loop (which is exiting
				// too) can no longer observe it; closing it here is safe.
				if err := r.Handle().Close(); err != nil {
					h.logger.Warnf("closing %q failed: %s", r.Path(), err)
				}
				monitoring.IncDevicesRetired()
				return
			}
			if err := r.Handle().Close(); err != nil {
				h.logger.Warnf("closing %q failed: %s", r.Path(), err)
			}
			monitoring.IncDevicesRetired()
			r = next
			continue
		}

		if !r.MarkedForUnregistration() {
			r.MarkForUnregistration()
		}
		prev = r
		r = next
	}
}

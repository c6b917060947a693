// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package hub

import (
	"time"

	"github.com/eynsai/raw-hid-hub/devicetable"
	"github.com/eynsai/raw-hid-hub/frame"
	"github.com/eynsai/raw-hid-hub/monitoring"
	"github.com/eynsai/raw-hid-hub/registrar"
)

// classifyAndRoute implements spec.md §4.3's decision table for one frame f
// just read from src.
func (h *Hub) classifyAndRoute(src *devicetable.Record, f frame.Frame) {
	kind, dest := frame.Classify(f)

	switch kind {
	case frame.Discard:
		h.logger.Debugf("discarding malformed frame from %q", src.Path())
		monitoring.IncFramesDropped(monitoring.ReasonMalformed)

	case frame.Registration:
		h.handleRegistration(src)

	case frame.Unregistration:
		h.handleUnregistration(src)

	case frame.Message:
		h.handleMessage(src, dest, f)
	}
}

func (h *Hub) handleRegistration(src *devicetable.Record) {
	id, result := h.reg.Register(src.ID())

	switch result {
	case registrar.Newly:
		src.SetID(id)
		h.logger.Infof("registered device %q as id %d", src.Path(), id)
		// The membership-changed broadcast to every member, including src,
		// happens in ioPass right after src's inbound frames are drained.

	case registrar.AlreadyRegistered:
		h.queues.Push(src.ID(), h.reg.BuildStatus(src.ID()))

	case registrar.Full:
		h.logger.Warnf("registrar full; dropping registration from %q", src.Path())
		monitoring.IncFramesDropped(monitoring.ReasonFull)
	}
}

func (h *Hub) handleUnregistration(src *devicetable.Record) {
	id := src.ID()
	if id == frame.Unassigned {
		return
	}

	h.reg.Unregister(id)
	h.queues.Clear(id)
	src.SetID(frame.Unassigned)
}

func (h *Hub) handleMessage(src *devicetable.Record, dest byte, f frame.Frame) {
	if src.ID() == frame.Unassigned || !h.reg.IDInUse(dest) {
		monitoring.IncFramesDropped(monitoring.ReasonNoRoute)
		return
	}

	h.queues.Push(dest, frame.Rewrite(f, src.ID()))
	monitoring.IncFramesRouted()
	h.lastMessageAt = time.Now()
}

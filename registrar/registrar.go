// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package registrar assigns and releases device ids and tracks hub
// membership, per spec.md §4.2.
//
// A Registrar is not safe for concurrent use; spec.md's I/O loop (§4.5) is
// its sole caller, matching the field-writer partition in §4.1 where
// device_id bookkeeping belongs entirely to the I/O agent.
package registrar

import "github.com/eynsai/raw-hid-hub/frame"

// Result reports the outcome of a Register call.
type Result int

const (
	// Newly indicates the device was not previously registered and was just
	// assigned an id.
	Newly Result = iota
	// AlreadyRegistered indicates the device already held an id; Register
	// was a no-op.
	AlreadyRegistered
	// Full indicates MaxRegistered devices already hold ids; the request was
	// dropped.
	Full
)

// Registrar tracks the set of currently-assigned device ids.
type Registrar struct {
	assigned  []byte // assigned_ids, insertion order is not semantically significant.
	inUse     [256]bool
	nextID    byte // next_candidate_id, starts at 1.
	membershipChanged bool
}

// New returns a Registrar with next_candidate_id initialized to 1, per
// spec.md §3.
func New() *Registrar {
	return &Registrar{nextID: 1}
}

// Count returns the number of currently-assigned ids.
func (r *Registrar) Count() int { return len(r.assigned) }

// IDInUse reports whether id is currently assigned to some device.
func (r *Registrar) IDInUse(id byte) bool { return r.inUse[id] }

// AssignedIDs returns a snapshot of the currently-assigned ids. The caller
// must not mutate the returned slice.
func (r *Registrar) AssignedIDs() []byte { return r.assigned }

// MembershipChanged reports whether membership has changed since the last
// ClearMembershipChanged call.
func (r *Registrar) MembershipChanged() bool { return r.membershipChanged }

// ClearMembershipChanged clears the membership-changed flag. The I/O loop
// calls this after it has enqueued status frames to every current member.
func (r *Registrar) ClearMembershipChanged() { r.membershipChanged = false }

// Register assigns currentID an id if it doesn't already have one.
//
// If currentID is frame.Unassigned, Register allocates the smallest unused
// id starting its linear probe from next_candidate_id (wrapping modulo 255,
// skipping the reserved Hub/Unassigned value 255) and returns the new id
// along with Newly. If currentID is already a valid assigned id, Register
// is a no-op and returns (currentID, AlreadyRegistered). If MaxRegistered
// ids are already assigned, Register returns (frame.Unassigned, Full) and
// makes no changes.
func (r *Registrar) Register(currentID byte) (byte, Result) {
	if currentID != frame.Unassigned {
		return currentID, AlreadyRegistered
	}

	if len(r.assigned) >= frame.MaxRegistered {
		return frame.Unassigned, Full
	}

	id := r.nextID
	for r.inUse[id] {
		id++
		if id == frame.Hub {
			id = 0
		}
	}

	r.inUse[id] = true
	r.assigned = append(r.assigned, id)
	r.membershipChanged = true

	r.nextID = id + 1
	if r.nextID == frame.Hub {
		r.nextID = 0
	}

	return id, Newly
}

// Unregister releases currentID, if assigned, removing it from the assigned
// set by swap-with-last.
//
// Per spec.md §9's Open Question, id_in_use is cleared for currentID before
// the caller resets its record's device_id field — Unregister itself never
// touches frame.Unassigned's bit, since it operates on the id that was
// actually assigned.
func (r *Registrar) Unregister(currentID byte) {
	if currentID == frame.Unassigned {
		return
	}

	idx := -1
	for i, id := range r.assigned {
		if id == currentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	r.inUse[currentID] = false

	last := len(r.assigned) - 1
	r.assigned[idx] = r.assigned[last]
	r.assigned = r.assigned[:last]

	r.membershipChanged = true
}

// BuildStatus constructs the hub→device status frame for recipientID, per
// spec.md §4.2.
func (r *Registrar) BuildStatus(recipientID byte) frame.Frame {
	return frame.BuildStatus(recipientID, r.assigned)
}

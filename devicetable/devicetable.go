// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package devicetable implements the lock-free, ordered device record chain
// shared between the discovery task and the I/O loop.
//
// This is the hard part described in spec.md §1: two agents of different
// cadence mutate and observe the same collection without a mutex on the hot
// path. The field-writer partition from spec.md §4.1 is enforced by which
// methods exist on Record — there is no setter for a field this package's
// caller isn't supposed to write, and the comment on each documents its
// owning agent.
//
// Record chaining (next) and the head pointer are atomic.Pointer values so
// the I/O loop can walk the table with plain atomic loads while discovery
// appends and unlinks concurrently; Record's two cross-agent flags are
// atomic.Bool. Every other field has exactly one writer and needs no
// synchronization beyond the happens-before edge those atomics provide.
package devicetable

import (
	"sync/atomic"
	"time"

	"github.com/eynsai/raw-hid-hub/backend"
	"github.com/eynsai/raw-hid-hub/frame"
)

// Record is one entry in the Device Table: a currently-open raw HID
// interface, per spec.md §3.
//
// Field-writer partition (spec.md §4.1):
//
//	next, Path, Handle lifetime        -> discovery only
//	SeenThisEnumeration                -> discovery only
//	MarkedForUnregistration            -> discovery writes, I/O reads
//	ID                                 -> I/O only
//	MarkedForDeletion                  -> I/O writes, discovery reads
type Record struct {
	handle backend.Device
	path   string

	id byte // device_id; Unassigned until the I/O loop registers this record.

	seenThisEnumeration bool

	markedForUnregistration atomic.Bool
	markedForDeletion       atomic.Bool

	next atomic.Pointer[Record]
}

// NewRecord creates a Record for an interface discovery just opened at
// path. It starts with id Unassigned and seenThisEnumeration true (the
// discovery pass that created it has, by definition, just seen it).
func NewRecord(handle backend.Device, path string) *Record {
	return &Record{
		handle:              handle,
		path:                path,
		id:                  frame.Unassigned,
		seenThisEnumeration: true,
	}
}

// Handle returns the backend device handle this record owns. Owned and
// closed exactly once, by discovery, at record destruction.
func (r *Record) Handle() backend.Device { return r.handle }

// Path is the stable backend path used to match this record against future
// enumerations. Immutable after construction.
func (r *Record) Path() string { return r.path }

// ID returns the record's currently-assigned device id, or frame.Unassigned.
// Written only by the I/O loop via SetID.
func (r *Record) ID() byte { return r.id }

// SetID sets the record's device id. I/O-loop-only.
func (r *Record) SetID(id byte) { r.id = id }

// SeenThisEnumeration reports whether discovery's current enumeration pass
// has observed this record. Discovery-only.
func (r *Record) SeenThisEnumeration() bool { return r.seenThisEnumeration }

// SetSeenThisEnumeration sets the scratch flag discovery uses across an
// enumeration pass. Discovery-only.
func (r *Record) SetSeenThisEnumeration(seen bool) { r.seenThisEnumeration = seen }

// MarkedForUnregistration reports whether discovery has flagged this record
// absent from the last enumeration. The I/O loop observes this and
// unregisters the record at its next visit.
func (r *Record) MarkedForUnregistration() bool { return r.markedForUnregistration.Load() }

// MarkForUnregistration sets the unregistration flag. Discovery-only.
func (r *Record) MarkForUnregistration() { r.markedForUnregistration.Store(true) }

// MarkedForDeletion reports whether the I/O loop has finished unregistering
// this record and cleared it for physical removal.
func (r *Record) MarkedForDeletion() bool { return r.markedForDeletion.Load() }

// MarkForDeletion sets the deletion flag. I/O-loop-only; must only be called
// after the record has been unregistered.
func (r *Record) MarkForDeletion() { r.markedForDeletion.Store(true) }

// Next returns the next record in the chain, or nil at the tail. Safe to
// call from either agent.
func (r *Record) Next() *Record { return r.next.Load() }

// Table is the ordered, singly-linked chain of device records.
//
// All structural mutation (Append, Unlink) is discovery-only; the I/O loop
// only walks the chain via First/Record.Next.
type Table struct {
	head atomic.Pointer[Record]

	// freshIteration is cleared by discovery and set by the I/O loop at the
	// end of every pass. It implements the removal handshake in spec.md
	// §4.1 step 3.
	freshIteration atomic.Bool
}

// First returns the head of the chain, or nil if empty. Safe for either
// agent.
func (t *Table) First() *Record { return t.head.Load() }

// Append adds r to the tail of the chain. Discovery-only: Table has exactly
// one structural writer, so this performs a plain walk-and-store rather than
// a CAS loop.
func (t *Table) Append(r *Record) {
	head := t.head.Load()
	if head == nil {
		t.head.Store(r)
		return
	}

	last := head
	for n := last.Next(); n != nil; n = last.Next() {
		last = n
	}
	last.next.Store(r)
}

// Unlink removes r from the chain, given its immediate predecessor (nil if
// r is currently the head). Discovery-only, and only valid once
// r.MarkedForDeletion() is true.
func (t *Table) Unlink(prev, r *Record) {
	successor := r.Next()
	if prev == nil {
		t.head.Store(successor)
		return
	}
	prev.next.Store(successor)
}

// SignalIterationComplete marks that the I/O loop has finished a full pass
// over the table. Called once, at the end of every I/O pass.
func (t *Table) SignalIterationComplete() { t.freshIteration.Store(true) }

// Reset empties the table, discarding every record without closing their
// handles. Used only during hub shutdown, after the I/O loop has already
// stopped touching the table.
func (t *Table) Reset() {
	t.head.Store(nil)
	t.freshIteration.Store(false)
}

// AwaitFreshIteration implements spec.md §4.1 step 3 of the removal
// protocol: clear the shared flag, then poll (waiting step between checks)
// until the I/O loop has completed one full pass since the clear. This
// proves no stale pointer into an just-unlinked record remains live on the
// I/O loop's stack.
//
// done aborts the wait early — the I/O loop may stop signaling fresh
// iterations once it starts tearing down (spec.md §4.5), and without an
// abort path the caller would spin forever. AwaitFreshIteration reports
// whether a fresh iteration was actually observed; the caller must treat
// false as "no handshake guarantee was obtained" and finish the removal on
// its own, since shutdown is already underway.
func (t *Table) AwaitFreshIteration(step time.Duration, done <-chan struct{}) bool {
	t.freshIteration.Store(false)

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for !t.freshIteration.Load() {
		select {
		case <-done:
			return false
		case <-ticker.C:
		}
	}
	return true
}

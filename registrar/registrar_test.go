// Copyright 2026 The raw-hid-hub Authors. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package registrar

import (
	"testing"

	"github.com/eynsai/raw-hid-hub/frame"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestRegistrar(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Registrar")
}

var _ = Describe("Registrar", func() {
	var r *Registrar
	BeforeEach(func() {
		r = New()
	})

	It("starts with no assigned ids", func() {
		Expect(r.Count()).To(Equal(0))
		Expect(r.MembershipChanged()).To(BeFalse())
	})

	// Scenario 1: registration round trip.
	It("assigns the first id as 1", func() {
		id, result := r.Register(frame.Unassigned)
		Expect(result).To(Equal(Newly))
		Expect(id).To(Equal(byte(1)))
		Expect(r.IDInUse(1)).To(BeTrue())
		Expect(r.Count()).To(Equal(1))
		Expect(r.MembershipChanged()).To(BeTrue())
	})

	// Scenario 2: second registration.
	It("assigns sequential ids to successive registrants", func() {
		idA, _ := r.Register(frame.Unassigned)
		idB, _ := r.Register(frame.Unassigned)
		Expect(idA).To(Equal(byte(1)))
		Expect(idB).To(Equal(byte(2)))
	})

	// Scenario 3 / idempotence.
	It("treats a re-registration of an already-registered id as a no-op", func() {
		id, _ := r.Register(frame.Unassigned)
		Expect(r.Count()).To(Equal(1))

		r.ClearMembershipChanged()

		again, result := r.Register(id)
		Expect(result).To(Equal(AlreadyRegistered))
		Expect(again).To(Equal(id))
		Expect(r.Count()).To(Equal(1))
		Expect(r.MembershipChanged()).To(BeFalse())
	})

	// Scenario 5: unregister and swap-with-last removal, id_in_use cleared.
	It("removes a registered id by swap-with-last and clears its bit", func() {
		idA, _ := r.Register(frame.Unassigned) // 1
		idB, _ := r.Register(frame.Unassigned) // 2
		idC, _ := r.Register(frame.Unassigned) // 3
		r.ClearMembershipChanged()

		r.Unregister(idB)

		Expect(r.IDInUse(idB)).To(BeFalse())
		Expect(r.Count()).To(Equal(2))
		Expect(r.AssignedIDs()).To(ConsistOf(idA, idC))
		Expect(r.MembershipChanged()).To(BeTrue())
	})

	It("does nothing when unregistering an id that isn't assigned", func() {
		r.Unregister(frame.Unassigned)
		Expect(r.MembershipChanged()).To(BeFalse())
		Expect(r.Count()).To(Equal(0))
	})

	// Boundary: the 31st registration is rejected.
	It("returns Full for the 31st distinct registration", func() {
		for i := 0; i < frame.MaxRegistered; i++ {
			_, result := r.Register(frame.Unassigned)
			Expect(result).To(Equal(Newly))
		}
		Expect(r.Count()).To(Equal(frame.MaxRegistered))

		id, result := r.Register(frame.Unassigned)
		Expect(result).To(Equal(Full))
		Expect(id).To(Equal(frame.Unassigned))
		Expect(r.Count()).To(Equal(frame.MaxRegistered))
	})

	It("advances the round-robin cursor past a freed id instead of reusing it", func() {
		idA, _ := r.Register(frame.Unassigned) // 1
		idB, _ := r.Register(frame.Unassigned) // 2
		_ = idA
		r.Unregister(idB)

		// The probe starts at next_candidate_id (3), not at the freed id.
		next, result := r.Register(frame.Unassigned)
		Expect(result).To(Equal(Newly))
		Expect(next).To(Equal(idB + 1))
	})

	It("wraps id allocation modulo 255, skipping the reserved hub id", func() {
		r.nextID = 254
		idFirst, _ := r.Register(frame.Unassigned)
		Expect(idFirst).To(Equal(byte(254)))

		idSecond, _ := r.Register(frame.Unassigned)
		Expect(idSecond).To(Equal(byte(0)))
	})

	Describe("BuildStatus", func() {
		It("delegates to frame.BuildStatus with the current assigned set", func() {
			idA, _ := r.Register(frame.Unassigned)
			idB, _ := r.Register(frame.Unassigned)

			f := r.BuildStatus(idA)
			Expect(f).To(Equal(frame.BuildStatus(idA, []byte{idA, idB})))
		})
	})
})

package tournament

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrForeignEventID   = errors.New("event does not belong to this tournament")
	ErrDuplicateEventID = errors.New("event submitted more than once")
)

type EventUpdate struct {
	ID          uuid.UUID
	EventNumber int
	Input       EventInput
}

type EventInsert struct {
	EventNumber int
	Input       EventInput
}

// Plan is the set of row changes that turns the persisted events of a tournament
// into the requested ones. The three sets never share an event ID.
type Plan struct {
	Deletes []EventRef
	Updates []EventUpdate
	Inserts []EventInsert

	numbering []int
}

// Reconcile diffs the requested event list against the persisted rows.
//
// Requested events that carry an ID update that row and keep its event number,
// whatever their position in the request. Events without an ID are inserted and
// numbered after the highest persisted number, in submission order. Persisted
// rows the request does not mention are deleted. An ID that is not persisted for
// the tournament, or that appears twice, fails the whole plan.
func Reconcile(persisted []EventRef, requested []EventInput) (*Plan, error) {
	numbers := make(map[uuid.UUID]int, len(persisted))
	maxNumber := 0
	for _, ref := range persisted {
		numbers[ref.ID] = ref.EventNumber
		if ref.EventNumber > maxNumber {
			maxNumber = ref.EventNumber
		}
	}

	referenced := make(map[uuid.UUID]bool, len(requested))
	for _, in := range requested {
		if in.ID == nil {
			continue
		}
		id := *in.ID
		if _, ok := numbers[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrForeignEventID, id)
		}
		if referenced[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEventID, id)
		}
		referenced[id] = true
	}

	plan := &Plan{}
	for _, ref := range persisted {
		if !referenced[ref.ID] {
			plan.Deletes = append(plan.Deletes, ref)
		}
	}

	next := maxNumber
	for _, in := range requested {
		if in.ID != nil {
			plan.Updates = append(plan.Updates, EventUpdate{
				ID:          *in.ID,
				EventNumber: numbers[*in.ID],
				Input:       in,
			})
			plan.numbering = append(plan.numbering, numbers[*in.ID])
			continue
		}
		next++
		plan.Inserts = append(plan.Inserts, EventInsert{EventNumber: next, Input: in})
		plan.numbering = append(plan.numbering, next)
	}

	return plan, nil
}

func (p *Plan) DeleteIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Deletes))
	for _, ref := range p.Deletes {
		ids = append(ids, ref.ID)
	}
	return ids
}

// IsEmpty is true when applying the plan would not touch any event row.
func (p *Plan) IsEmpty() bool {
	return len(p.Deletes) == 0 && len(p.Updates) == 0 && len(p.Inserts) == 0
}

// Numbering lists the event number each requested event ends up with, in
// submission order. Numbers need not be contiguous.
func (p *Plan) Numbering() []int {
	return append([]int(nil), p.numbering...)
}

package progress

import (
	"fmt"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/route"
)

// Slot identifies one position in a team's route, in visit order.
type Slot int

const (
	SlotStart Slot = iota
	SlotLocation1
	SlotLocation2
	SlotLocation3
	SlotLocation4
	SlotLocation5
	SlotEnd
)

func (s Slot) String() string {
	switch s {
	case SlotStart:
		return "start"
	case SlotEnd:
		return "end_location"
	case SlotLocation1, SlotLocation2, SlotLocation3, SlotLocation4, SlotLocation5:
		return fmt.Sprintf("location%d", int(s))
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// IsIntermediate reports whether the slot is one of location1..location5.
func (s Slot) IsIntermediate() bool {
	return s >= SlotLocation1 && s <= SlotLocation5
}

// State is the team's derived position in the hunt. It is never stored;
// it is recomputed from the confirmed slots and the device lock.
type State int

const (
	StateUnlocked State = iota
	StateAtStart
	StateAtLocation1
	StateAtLocation2
	StateAtLocation3
	StateAtLocation4
	StateAtLocation5
	StateFinished
)

// Confirmation records that a slot's checkpoint was reached: the confirmed
// code (always equal to the matching route slot) and the event-local time.
type Confirmation struct {
	Code string
	At   time.Time
}

// Progress tracks a team's confirmed slots, device custody, and the
// disqualification flag. All slot mutation goes through Confirm so the
// left-to-right fill order cannot be violated by a new code path.
type Progress struct {
	TeamName     string
	TeamID       string
	Start        *Confirmation
	Locations    [route.IntermediateCount]*Confirmation
	End          *Confirmation
	LockedDevice string
	LockedMember string
	Restricted   bool
}

// At returns the confirmation stored in the given slot, nil when unset.
func (p *Progress) At(slot Slot) *Confirmation {
	switch {
	case slot == SlotStart:
		return p.Start
	case slot == SlotEnd:
		return p.End
	case slot.IsIntermediate():
		return p.Locations[int(slot)-1]
	default:
		return nil
	}
}

// NextSlot returns the first unconfirmed slot among start, location1..5.
// ok is false once every scoring slot is confirmed.
func (p *Progress) NextSlot() (Slot, bool) {
	if p.Start == nil {
		return SlotStart, true
	}
	for i, c := range p.Locations {
		if c == nil {
			return SlotLocation1 + Slot(i), true
		}
	}
	return 0, false
}

// Confirm fills slot with code at the given time. Only the next unconfirmed
// slot may be filled; anything else is a transition violation.
func (p *Progress) Confirm(slot Slot, code string, at time.Time) error {
	next, ok := p.NextSlot()
	if !ok {
		return fmt.Errorf("%w: all checkpoints confirmed", ErrTransition)
	}
	if slot != next {
		return fmt.Errorf("%w: slot %s cannot be confirmed while %s is open", ErrTransition, slot, next)
	}

	c := &Confirmation{Code: code, At: at}
	if slot == SlotStart {
		p.Start = c
		return nil
	}
	p.Locations[int(slot)-1] = c
	return nil
}

// State derives the team's position from the lock and confirmed slots.
func (p *Progress) State() State {
	if p.LockedDevice == "" {
		return StateUnlocked
	}
	next, ok := p.NextSlot()
	if !ok {
		return StateFinished
	}
	if next == SlotStart {
		return StateAtStart
	}
	return StateAtStart + State(next)
}

// Score counts confirmed slots among start and location1..5. The end slot is
// intentionally excluded from scoring.
func (p *Progress) Score() int {
	score := 0
	if p.Start != nil {
		score++
	}
	for _, c := range p.Locations {
		if c != nil {
			score++
		}
	}
	return score
}

// Finished reports whether the last scored checkpoint is confirmed.
func (p *Progress) Finished() bool {
	return p.Locations[route.IntermediateCount-1] != nil
}

// LastConfirmedAt returns the most recent confirmation time by checking
// location5 down to start in fixed priority order. This is equivalent to a
// true maximum as long as slots fill strictly left to right, which Confirm
// enforces.
func (p *Progress) LastConfirmedAt() (time.Time, bool) {
	for i := route.IntermediateCount - 1; i >= 0; i-- {
		if c := p.Locations[i]; c != nil {
			return c.At, true
		}
	}
	if p.Start != nil {
		return p.Start.At, true
	}
	return time.Time{}, false
}

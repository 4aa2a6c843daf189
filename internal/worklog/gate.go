package worklog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/username/overtime-tracker/pkg/dateutil"
)

var (
	// ErrJustificationPending is returned when a new edit arrives while a Sunday
	// edit is waiting for its reason
	ErrJustificationPending = errors.New("a sunday edit is waiting for a justification")
	// ErrNothingPending is returned by Submit when no edit is held
	ErrNothingPending = errors.New("no edit is waiting for a justification")
	// ErrEmptyJustification is returned by Submit for a blank reason
	ErrEmptyJustification = errors.New("justification must not be empty")
)

// GateState is the state of the Sunday justification gate
type GateState int

const (
	GateIdle GateState = iota
	GatePendingJustification
)

// String returns the state name
func (s GateState) String() string {
	if s == GatePendingJustification {
		return "pending-justification"
	}
	return "idle"
}

// Outcome is the result of proposing an edit
type Outcome int

const (
	// Applied means the edit was written to the store
	Applied Outcome = iota
	// NeedsJustification means the edit is held until Submit or Cancel
	NeedsJustification
)

// PendingWrite is an edit held by the gate
type PendingWrite struct {
	EmployeeID string
	Date       string
	Shift      Shift
	RawValue   string
}

// Gate applies interactive hour edits to a Store, holding back Sunday edits
// that would add hours without a justification until one is supplied.
type Gate struct {
	store   *Store
	state   GateState
	pending PendingWrite
}

// NewGate creates an idle gate over the store
func NewGate(store *Store) *Gate {
	return &Gate{store: store}
}

// State returns the current gate state
func (g *Gate) State() GateState {
	return g.state
}

// Pending returns the held edit, if any
func (g *Gate) Pending() (PendingWrite, bool) {
	return g.pending, g.state == GatePendingJustification
}

// Propose evaluates an edit of one shift's hours. rawValue is coerced with
// ParseHours. The edit is applied immediately unless the date is a Sunday, the
// merged log has hours and no non-blank justification exists yet.
func (g *Gate) Propose(employeeID, date string, shift Shift, rawValue string) (Outcome, error) {
	if g.state == GatePendingJustification {
		return Applied, ErrJustificationPending
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return Applied, fmt.Errorf("propose: %w", err)
	}
	date = dateutil.FormatDate(day)

	candidate := g.store.Merge(employeeID, date, shift, ParseHours(rawValue))
	if RequiresJustification(day, candidate) {
		g.state = GatePendingJustification
		g.pending = PendingWrite{
			EmployeeID: employeeID,
			Date:       date,
			Shift:      shift,
			RawValue:   rawValue,
		}
		return NeedsJustification, nil
	}

	if err := g.store.Set(employeeID, date, candidate); err != nil {
		return Applied, err
	}
	return Applied, nil
}

// Submit applies the held edit with the justification attached
// A blank reason leaves the edit pending.
func (g *Gate) Submit(reason string) (PendingWrite, error) {
	if g.state != GatePendingJustification {
		return PendingWrite{}, ErrNothingPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return g.pending, ErrEmptyJustification
	}

	p := g.pending
	candidate := g.store.Merge(p.EmployeeID, p.Date, p.Shift, ParseHours(p.RawValue))
	candidate.Justification = reason
	if err := g.store.Set(p.EmployeeID, p.Date, candidate); err != nil {
		return p, err
	}

	g.reset()
	return p, nil
}

// Cancel discards the held edit
func (g *Gate) Cancel() (PendingWrite, bool) {
	p, ok := g.Pending()
	g.reset()
	return p, ok
}

func (g *Gate) reset() {
	g.state = GateIdle
	g.pending = PendingWrite{}
}

package worklog

import (
	"errors"
	"testing"
)

func TestGate_WeekdayEditAppliesImmediately(t *testing.T) {
	s := NewStore(nil)
	g := NewGate(s)

	outcome, err := g.Propose("e1", monday, ShiftDay, "8")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if outcome != Applied {
		t.Errorf("outcome = %v, want Applied", outcome)
	}
	if g.State() != GateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
	if got := s.Get("e1", monday); got.DayHours != 8 {
		t.Errorf("stored = %+v, want 8 day hours", got)
	}
}

func TestGate_SundayWithoutReasonIsHeld(t *testing.T) {
	s := NewStore(nil)
	g := NewGate(s)

	outcome, err := g.Propose("e1", sunday, ShiftEvening, "3")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if outcome != NeedsJustification {
		t.Fatalf("outcome = %v, want NeedsJustification", outcome)
	}
	if g.State() != GatePendingJustification {
		t.Errorf("state = %v, want pending", g.State())
	}
	if got := s.Get("e1", sunday); got != (DailyLog{}) {
		t.Errorf("store changed before justification: %+v", got)
	}
	pending, ok := g.Pending()
	if !ok || pending.EmployeeID != "e1" || pending.Date != sunday || pending.Shift != ShiftEvening || pending.RawValue != "3" {
		t.Errorf("Pending() = %+v, %v", pending, ok)
	}
}

func TestGate_SubmitAppliesHeldValueWithReason(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("e1", sunday, DailyLog{}); err != nil {
		t.Fatal(err)
	}
	g := NewGate(s)
	if _, err := g.Propose("e1", sunday, ShiftDay, "5"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.Submit("  "); !errors.Is(err, ErrEmptyJustification) {
		t.Fatalf("Submit(blank) error = %v, want ErrEmptyJustification", err)
	}
	if g.State() != GatePendingJustification {
		t.Fatal("blank reason must keep the edit pending")
	}

	if _, err := g.Submit("year-end inventory"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	want := DailyLog{DayHours: 5, Justification: "year-end inventory"}
	if got := s.Get("e1", sunday); got != want {
		t.Errorf("stored = %+v, want %+v", got, want)
	}
	if g.State() != GateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
}

func TestGate_CancelDiscardsEverything(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("e1", monday, DailyLog{DayHours: 4}); err != nil {
		t.Fatal(err)
	}
	before := s.Get("e1", sunday)
	g := NewGate(s)
	if _, err := g.Propose("e1", sunday, ShiftDay, "6"); err != nil {
		t.Fatal(err)
	}

	pending, ok := g.Cancel()

	if !ok || pending.RawValue != "6" {
		t.Errorf("Cancel() = %+v, %v", pending, ok)
	}
	if g.State() != GateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
	if got := s.Get("e1", sunday); got != before {
		t.Errorf("store changed after cancel: %+v", got)
	}
	if _, ok := s.Logs()["e1"][sunday]; ok {
		t.Error("cancelled edit created an entry")
	}
	if _, err := g.Submit("late"); !errors.Is(err, ErrNothingPending) {
		t.Errorf("Submit() after cancel error = %v, want ErrNothingPending", err)
	}
}

func TestGate_ExistingReasonSkipsPrompt(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("e1", sunday, DailyLog{DayHours: 2, Justification: "delivery"}); err != nil {
		t.Fatal(err)
	}
	g := NewGate(s)

	outcome, err := g.Propose("e1", sunday, ShiftEvening, "1.5")
	if err != nil {
		t.Fatal(err)
	}

	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}
	want := DailyLog{DayHours: 2, EveningHours: 1.5, Justification: "delivery"}
	if got := s.Get("e1", sunday); got != want {
		t.Errorf("stored = %+v, want %+v", got, want)
	}
}

func TestGate_SundayZeroHoursApplies(t *testing.T) {
	s := NewStore(nil)
	g := NewGate(s)

	outcome, err := g.Propose("e1", sunday, ShiftDay, "not a number")
	if err != nil {
		t.Fatal(err)
	}

	if outcome != Applied {
		t.Errorf("outcome = %v, want Applied for zero hours", outcome)
	}
	if got := s.Get("e1", sunday); got != (DailyLog{}) {
		t.Errorf("stored = %+v, want zero log", got)
	}
}

func TestGate_RejectsEditsWhilePending(t *testing.T) {
	s := NewStore(nil)
	g := NewGate(s)
	if _, err := g.Propose("e1", sunday, ShiftDay, "6"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.Propose("e1", monday, ShiftDay, "8"); !errors.Is(err, ErrJustificationPending) {
		t.Fatalf("Propose() while pending error = %v, want ErrJustificationPending", err)
	}
	if got := s.Get("e1", monday); got != (DailyLog{}) {
		t.Errorf("edit applied while pending: %+v", got)
	}

	pending, _ := g.Pending()
	if pending.Date != sunday {
		t.Errorf("pending slot replaced: %+v", pending)
	}
}

func TestGate_BlankStoredReasonIsHeld(t *testing.T) {
	logs, err := DecodeLogs([]byte(`{"e1":{"2025-03-16":{"day":2,"reason":"  "}}}`))
	if err != nil {
		t.Fatalf("DecodeLogs() error = %v", err)
	}
	s := NewStore(logs)
	g := NewGate(s)

	outcome, err := g.Propose("e1", sunday, ShiftEvening, "3")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if outcome != NeedsJustification {
		t.Fatalf("outcome = %v, want NeedsJustification", outcome)
	}
	if g.State() != GatePendingJustification {
		t.Errorf("state = %v, want pending", g.State())
	}

	if _, err := g.Submit("on-call"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	got := s.Get("e1", sunday)
	if got.DayHours != 2 || got.EveningHours != 3 || got.Justification != "on-call" {
		t.Errorf("stored = %+v, want day 2, evening 3, reason on-call", got)
	}
}

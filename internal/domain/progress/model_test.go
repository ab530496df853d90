package progress

import (
	"errors"
	"testing"
	"time"
)

func TestProgress_ConfirmFillsLeftToRight(t *testing.T) {
	t.Parallel()

	var p Progress
	base := time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC)

	if err := p.Confirm(SlotLocation1, "LIB", base); !errors.Is(err, ErrTransition) {
		t.Fatalf("expected ErrTransition confirming location1 before start, got %v", err)
	}

	if err := p.Confirm(SlotStart, "CLG", base); err != nil {
		t.Fatalf("confirm start: %v", err)
	}
	if p.Start == nil || p.Start.Code != "CLG" {
		t.Fatalf("start not recorded: %+v", p.Start)
	}

	if err := p.Confirm(SlotLocation2, "GYM", base); !errors.Is(err, ErrTransition) {
		t.Fatalf("expected ErrTransition skipping location1, got %v", err)
	}

	codes := []string{"LIB", "GYM", "CAF", "AUD", "LAB"}
	for i, code := range codes {
		at := base.Add(time.Duration(i+1) * time.Minute)
		if err := p.Confirm(SlotLocation1+Slot(i), code, at); err != nil {
			t.Fatalf("confirm %s: %v", code, err)
		}
	}

	if _, ok := p.NextSlot(); ok {
		t.Fatal("expected no next slot after location5")
	}
	if err := p.Confirm(SlotLocation5, "LAB", base); !errors.Is(err, ErrTransition) {
		t.Fatalf("expected ErrTransition when all slots filled, got %v", err)
	}
}

func TestProgress_StateDerivation(t *testing.T) {
	t.Parallel()

	var p Progress
	if p.State() != StateUnlocked {
		t.Fatalf("expected StateUnlocked, got %v", p.State())
	}

	p.LockedDevice = "device-1"
	if p.State() != StateAtStart {
		t.Fatalf("expected StateAtStart, got %v", p.State())
	}

	now := time.Now()
	if err := p.Confirm(SlotStart, "CLG", now); err != nil {
		t.Fatal(err)
	}
	if p.State() != StateAtLocation1 {
		t.Fatalf("expected StateAtLocation1, got %v", p.State())
	}

	for i := 0; i < 5; i++ {
		if err := p.Confirm(SlotLocation1+Slot(i), "C", now); err != nil {
			t.Fatal(err)
		}
	}
	if p.State() != StateFinished {
		t.Fatalf("expected StateFinished, got %v", p.State())
	}
	if !p.Finished() {
		t.Fatal("expected Finished")
	}
}

func TestProgress_ScoreExcludesEnd(t *testing.T) {
	t.Parallel()

	var p Progress
	now := time.Now()
	_ = p.Confirm(SlotStart, "CLG", now)
	_ = p.Confirm(SlotLocation1, "LIB", now)
	_ = p.Confirm(SlotLocation2, "GYM", now)

	if got := p.Score(); got != 3 {
		t.Fatalf("expected score 3, got %d", got)
	}

	p.End = &Confirmation{Code: "CLG", At: now}
	if got := p.Score(); got != 3 {
		t.Fatalf("end slot must not affect score, got %d", got)
	}
}

func TestProgress_LastConfirmedAtPriorityOrder(t *testing.T) {
	t.Parallel()

	var p Progress
	if _, ok := p.LastConfirmedAt(); ok {
		t.Fatal("expected no recency on empty progress")
	}

	base := time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC)
	_ = p.Confirm(SlotStart, "CLG", base)

	got, ok := p.LastConfirmedAt()
	if !ok || !got.Equal(base) {
		t.Fatalf("expected start time, got %v ok=%v", got, ok)
	}

	_ = p.Confirm(SlotLocation1, "LIB", base.Add(10*time.Minute))
	_ = p.Confirm(SlotLocation2, "GYM", base.Add(25*time.Minute))

	got, ok = p.LastConfirmedAt()
	if !ok || !got.Equal(base.Add(25*time.Minute)) {
		t.Fatalf("expected location2 time, got %v ok=%v", got, ok)
	}
}

func TestSlot_String(t *testing.T) {
	t.Parallel()

	cases := map[Slot]string{
		SlotStart:     "start",
		SlotLocation1: "location1",
		SlotLocation5: "location5",
		SlotEnd:       "end_location",
	}
	for slot, want := range cases {
		if got := slot.String(); got != want {
			t.Fatalf("slot %d: got %q want %q", int(slot), got, want)
		}
	}
}

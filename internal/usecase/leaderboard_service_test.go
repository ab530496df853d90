package usecase

import (
	"testing"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/infrastructure/repository/memory"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

func confirmSlots(t *testing.T, repo *memory.ProgressRepository, teamName string, times []time.Time) {
	t.Helper()

	for i, at := range times {
		slot := progress.SlotStart + progress.Slot(i)
		if err := repo.ConfirmSlot(t.Context(), teamName, slot, "X", at); err != nil {
			t.Fatalf("confirm %s for %s: %v", slot, teamName, err)
		}
	}
}

func TestLeaderboardService_Ordering(t *testing.T) {
	repo := memory.NewProgressRepository()
	for _, name := range []string{"X", "Y", "Z", "Cheaters"} {
		if err := repo.Create(t.Context(), progress.Progress{TeamName: name, TeamID: "TR-" + name}); err != nil {
			t.Fatalf("create progress: %v", err)
		}
	}

	base := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	// X and Y both have 3 confirmations; Y got its third one earlier, so Y
	// ranks above X. Z trails with 1. Cheaters would lead but is restricted.
	confirmSlots(t, repo, "X", []time.Time{base, base.Add(10 * time.Minute), base.Add(40 * time.Minute)})
	confirmSlots(t, repo, "Y", []time.Time{base, base.Add(15 * time.Minute), base.Add(30 * time.Minute)})
	confirmSlots(t, repo, "Z", []time.Time{base})
	confirmSlots(t, repo, "Cheaters", []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute), base.Add(3 * time.Minute), base.Add(4 * time.Minute), base.Add(5 * time.Minute)})
	if err := repo.SetRestricted(t.Context(), "Cheaters", true); err != nil {
		t.Fatalf("set restricted: %v", err)
	}

	service := NewLeaderboardService(repo, logging.NewNop())
	rows, err := service.Leaderboard(t.Context())
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"Y", "X", "Z"} {
		if rows[i].TeamName != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, rows[i].TeamName)
		}
	}
	if rows[0].Score != 3 || rows[2].Score != 1 {
		t.Fatalf("unexpected scores: %+v", rows)
	}
}

func TestLeaderboardService_StatusAndRecency(t *testing.T) {
	repo := memory.NewProgressRepository()
	for _, name := range []string{"Done", "Fresh"} {
		if err := repo.Create(t.Context(), progress.Progress{TeamName: name}); err != nil {
			t.Fatalf("create progress: %v", err)
		}
	}

	base := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	times := make([]time.Time, 0, 6)
	for i := 0; i < 6; i++ {
		times = append(times, base.Add(time.Duration(i)*time.Minute))
	}
	confirmSlots(t, repo, "Done", times)

	service := NewLeaderboardService(repo, logging.NewNop())
	rows, err := service.Leaderboard(t.Context())
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	if rows[0].TeamName != "Done" || rows[0].Status != StatusFinished {
		t.Fatalf("expected Done finished at position 0, got %+v", rows[0])
	}
	if rows[0].Score != 6 {
		t.Fatalf("the finish checkpoint must not score: %+v", rows[0])
	}
	if got := rows[0].LastTime; got == nil || !got.Equal(base.Add(5*time.Minute)) {
		t.Fatalf("unexpected last time: %v", got)
	}

	if rows[1].TeamName != "Fresh" || rows[1].Status != StatusInProgress {
		t.Fatalf("expected Fresh in progress, got %+v", rows[1])
	}
	if rows[1].LastTime != nil {
		t.Fatalf("team with no confirmations must have no last time: %+v", rows[1])
	}
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

const (
	StatusFinished   = "Finished"
	StatusInProgress = "In Progress"
)

type LeaderboardRow struct {
	TeamName string
	TeamID   string
	Score    int
	LastTime *time.Time
	Status   string
}

// LeaderboardService projects team progress into the public ranking:
// confirmed checkpoints descending, earliest latest-confirmation first
// among ties. Disqualified teams never appear.
type LeaderboardService struct {
	progressRepo progress.Repository
	logger       *logging.Logger
}

func NewLeaderboardService(progressRepo progress.Repository, logger *logging.Logger) *LeaderboardService {
	return &LeaderboardService{progressRepo: progressRepo, logger: logger}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.LeaderboardService.Leaderboard")
	defer span.End()

	items, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	rows := make([]LeaderboardRow, 0, len(items))
	for i := range items {
		p := &items[i]
		if p.Restricted {
			continue
		}

		row := LeaderboardRow{
			TeamName: p.TeamName,
			TeamID:   p.TeamID,
			Score:    p.Score(),
			Status:   StatusInProgress,
		}
		if at, ok := p.LastConfirmedAt(); ok {
			row.LastTime = &at
		}
		if p.Finished() {
			row.Status = StatusFinished
		}
		rows = append(rows, row)
	}

	// Ties on score break by recency only when both rows carry a timestamp;
	// otherwise the incoming order stands, which the stable sort preserves.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].LastTime != nil && rows[j].LastTime != nil {
			return rows[i].LastTime.Before(*rows[j].LastTime)
		}
		return false
	})

	return rows, nil
}

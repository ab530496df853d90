package usecase

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/treasurerun/hunt-api/internal/domain/activity"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

type Overview struct {
	Teams       []TeamSummary
	Leaderboard []LeaderboardRow
	Activity    []activity.Entry
}

// DashboardService aggregates the operator console view in one call: the
// team list, the current ranking, and the confirmation log, fetched
// concurrently.
type DashboardService struct {
	moderation  *ModerationService
	leaderboard *LeaderboardService
	activity    *ActivityService
	logger      *logging.Logger
}

func NewDashboardService(
	moderation *ModerationService,
	leaderboard *LeaderboardService,
	activity *ActivityService,
	logger *logging.Logger,
) *DashboardService {
	return &DashboardService{
		moderation:  moderation,
		leaderboard: leaderboard,
		activity:    activity,
		logger:      logger,
	}
}

func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.DashboardService.Overview")
	defer span.End()

	var out Overview

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		teams, err := s.moderation.ListTeams(ctx)
		out.Teams = teams
		return err
	})
	p.Go(func(ctx context.Context) error {
		rows, err := s.leaderboard.Leaderboard(ctx)
		out.Leaderboard = rows
		return err
	})
	p.Go(func(ctx context.Context) error {
		entries, err := s.activity.List(ctx)
		out.Activity = entries
		return err
	})

	if err := p.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

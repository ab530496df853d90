package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/domain/route"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

type TeamSummary struct {
	TeamName   string
	TeamID     string
	Score      int
	Restricted bool
}

// ModerationService covers the operator surface: restricting and reinstating
// teams, listing every registered team, and fetching a team's full route.
type ModerationService struct {
	routeRepo    route.Repository
	progressRepo progress.Repository
	logger       *logging.Logger
}

func NewModerationService(routeRepo route.Repository, progressRepo progress.Repository, logger *logging.Logger) *ModerationService {
	return &ModerationService{
		routeRepo:    routeRepo,
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// SetRestricted flips the moderation veto for a team found by generated
// identifier or display name. Setting a flag to its current value is a no-op
// success.
func (s *ModerationService) SetRestricted(ctx context.Context, identifier string, restricted bool) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.ModerationService.SetRestricted")
	defer span.End()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return TeamSummary{}, fmt.Errorf("%w: team identifier is required", ErrInvalidInput)
	}

	pr, found, err := s.progressRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("find team: %w", err)
	}
	if !found {
		return TeamSummary{}, fmt.Errorf("%w: team=%s", ErrNotFound, identifier)
	}

	if pr.Restricted != restricted {
		if err := s.progressRepo.SetRestricted(ctx, pr.TeamName, restricted); err != nil {
			return TeamSummary{}, fmt.Errorf("set restricted: %w", err)
		}
		pr.Restricted = restricted

		s.logger.InfoContext(ctx, "team restriction changed",
			"team", pr.TeamName,
			"restricted", restricted,
		)
	}

	return TeamSummary{
		TeamName:   pr.TeamName,
		TeamID:     pr.TeamID,
		Score:      pr.Score(),
		Restricted: pr.Restricted,
	}, nil
}

// ListTeams returns every team including restricted ones, for the operator
// console.
func (s *ModerationService) ListTeams(ctx context.Context) ([]TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.ModerationService.ListTeams")
	defer span.End()

	items, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]TeamSummary, 0, len(items))
	for i := range items {
		p := &items[i]
		out = append(out, TeamSummary{
			TeamName:   p.TeamName,
			TeamID:     p.TeamID,
			Score:      p.Score(),
			Restricted: p.Restricted,
		})
	}
	return out, nil
}

// TeamRoute exposes a team's complete assigned route, checkpoints unvisited
// included. Operator-only: handing this to players would void the hunt.
func (s *ModerationService) TeamRoute(ctx context.Context, teamName string) (route.Route, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.ModerationService.TeamRoute")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return route.Route{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	rt, found, err := s.routeRepo.GetByTeam(ctx, teamName)
	if err != nil {
		return route.Route{}, fmt.Errorf("get route: %w", err)
	}
	if !found {
		return route.Route{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamName)
	}
	return rt, nil
}

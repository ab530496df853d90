package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/domain/route"
	"github.com/treasurerun/hunt-api/internal/domain/team"
	"github.com/treasurerun/hunt-api/internal/platform/id"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
)

const (
	// provisionWriteCount is the number of independent writes a registration
	// fans out to: registry row, route row, progress row.
	provisionWriteCount = 3

	// teamIDAttempts bounds identifier generation retries before giving up.
	teamIDAttempts = 5
)

// PartialProvisioningError reports a registration where some of the fan-out
// writes committed and others failed. The committed rows are left in place;
// operators resolve them using the named failed writes.
type PartialProvisioningError struct {
	TeamName string
	TeamID   string
	Failed   map[string]error
}

func (e *PartialProvisioningError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.Failed[name]))
	}
	return fmt.Sprintf("provisioning incomplete for team %s (%s): %s", e.TeamName, e.TeamID, strings.Join(parts, "; "))
}

type ProvisionInput struct {
	TeamName string
	Members  []string
}

type ProvisionResult struct {
	TeamID string
	Route  route.Route
}

// ProvisioningService registers a team: draws a random five-checkpoint route,
// assigns a generated identifier, and creates the registry, route, and
// progress rows.
type ProvisioningService struct {
	teamRepo     team.Repository
	routeRepo    route.Repository
	progressRepo progress.Repository
	pool         *CheckpointPool
	idGen        id.Generator
	startCode    string
	logger       *logging.Logger
	shuffle      func(n int, swap func(i, j int))
}

func NewProvisioningService(
	teamRepo team.Repository,
	routeRepo route.Repository,
	progressRepo progress.Repository,
	pool *CheckpointPool,
	idGen id.Generator,
	startCode string,
	logger *logging.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		teamRepo:     teamRepo,
		routeRepo:    routeRepo,
		progressRepo: progressRepo,
		pool:         pool,
		idGen:        idGen,
		startCode:    startCode,
		logger:       logger,
		shuffle:      rand.Shuffle,
	}
}

func (s *ProvisioningService) Provision(ctx context.Context, in ProvisionInput) (ProvisionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.ProvisioningService.Provision")
	defer span.End()

	name := strings.TrimSpace(in.TeamName)
	if name == "" {
		return ProvisionResult{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	members := make([]string, 0, len(in.Members))
	for _, m := range in.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return ProvisionResult{}, fmt.Errorf("%w: at least one member is required", ErrInvalidInput)
	}
	if len(members) > team.MaxMembers {
		return ProvisionResult{}, fmt.Errorf("%w: at most %d members are allowed", ErrInvalidInput, team.MaxMembers)
	}

	if _, exists, err := s.teamRepo.GetByName(ctx, name); err != nil {
		return ProvisionResult{}, fmt.Errorf("get team by name: %w", err)
	} else if exists {
		return ProvisionResult{}, fmt.Errorf("%w: team=%s", team.ErrNameTaken, name)
	}

	intermediates, err := s.drawIntermediates(ctx)
	if err != nil {
		return ProvisionResult{}, err
	}

	teamID, err := s.newTeamID(ctx)
	if err != nil {
		return ProvisionResult{}, err
	}

	rt := route.Route{
		TeamName:      name,
		Start:         s.startCode,
		Intermediates: intermediates,
		End:           s.startCode,
	}
	if err := rt.Validate(); err != nil {
		return ProvisionResult{}, fmt.Errorf("build route: %w", err)
	}

	newTeam := team.Team{Name: name, ID: teamID, Members: members}
	newProgress := progress.Progress{TeamName: name, TeamID: teamID}

	if err := s.commit(ctx, newTeam, rt, newProgress); err != nil {
		return ProvisionResult{}, err
	}

	s.logger.InfoContext(ctx, "team provisioned",
		"team", name,
		"team_id", teamID,
		"members", len(members),
	)

	return ProvisionResult{TeamID: teamID, Route: rt}, nil
}

// drawIntermediates shuffles the cached pool (Fisher-Yates) and takes the
// first five codes, so every draw is uniform over the available checkpoints.
func (s *ProvisioningService) drawIntermediates(ctx context.Context) ([route.IntermediateCount]string, error) {
	var draw [route.IntermediateCount]string

	codes, err := s.pool.Codes(ctx)
	if err != nil {
		return draw, err
	}
	if len(codes) < route.IntermediateCount {
		return draw, fmt.Errorf("%w: need %d distinct checkpoints, have %d", ErrNoCheckpointsAvailable, route.IntermediateCount, len(codes))
	}

	shuffled := append([]string(nil), codes...)
	s.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	copy(draw[:], shuffled[:route.IntermediateCount])
	return draw, nil
}

func (s *ProvisioningService) newTeamID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < teamIDAttempts; attempt++ {
		teamID, err := s.idGen.NewTeamID()
		if err != nil {
			return "", fmt.Errorf("generate team id: %w", err)
		}

		exists, err := s.teamRepo.ExistsByID(ctx, teamID)
		if err != nil {
			return "", fmt.Errorf("check team id: %w", err)
		}
		if !exists {
			return teamID, nil
		}
	}
	return "", fmt.Errorf("no unused team id after %d attempts", teamIDAttempts)
}

// commit runs the three provisioning writes concurrently. There is no
// cross-row transaction; failures come back as a PartialProvisioningError
// naming exactly which writes did not land.
func (s *ProvisioningService) commit(ctx context.Context, newTeam team.Team, rt route.Route, newProgress progress.Progress) error {
	writes := []struct {
		name string
		run  func() error
	}{
		{name: "team registry", run: func() error { return s.teamRepo.Create(ctx, newTeam) }},
		{name: "route", run: func() error { return s.routeRepo.Create(ctx, rt) }},
		{name: "progress", run: func() error { return s.progressRepo.Create(ctx, newProgress) }},
	}

	pool, err := ants.NewPool(provisionWriteCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	failed := make(map[string]error)

	var workers sync.WaitGroup
	for _, write := range writes {
		write := write
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := write.run(); err != nil {
				mu.Lock()
				failed[write.name] = err
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			mu.Lock()
			failed[write.name] = err
			mu.Unlock()
		}
	}
	workers.Wait()

	if len(failed) > 0 {
		return &PartialProvisioningError{
			TeamName: newTeam.Name,
			TeamID:   newTeam.ID,
			Failed:   failed,
		}
	}
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/treasurerun/hunt-api/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	byName map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{byName: make(map[string]team.Team)}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[item.Name]; exists {
		return team.ErrNameTaken
	}

	item.Members = append([]string(nil), item.Members...)
	r.byName[item.Name] = item
	return nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[name]
	if !ok {
		return team.Team{}, false, nil
	}
	item.Members = append([]string(nil), item.Members...)
	return item, true, nil
}

func (r *TeamRepository) ExistsByID(_ context.Context, teamID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byName {
		if item.ID == teamID {
			return true, nil
		}
	}
	return false, nil
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/treasurerun/hunt-api/internal/domain/route"
)

type RouteRepository struct {
	mu     sync.RWMutex
	byTeam map[string]route.Route
}

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{byTeam: make(map[string]route.Route)}
}

func (r *RouteRepository) Create(_ context.Context, item route.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTeam[item.TeamName]; exists {
		return fmt.Errorf("route already exists for team %s", item.TeamName)
	}
	r.byTeam[item.TeamName] = item
	return nil
}

func (r *RouteRepository) GetByTeam(_ context.Context, teamName string) (route.Route, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byTeam[teamName]
	return item, ok, nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
)

type ProgressRepository struct {
	mu     sync.RWMutex
	byTeam map[string]*progress.Progress
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{byTeam: make(map[string]*progress.Progress)}
}

func (r *ProgressRepository) Create(_ context.Context, item progress.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTeam[item.TeamName]; exists {
		return fmt.Errorf("progress already exists for team %s", item.TeamName)
	}
	stored := cloneProgress(&item)
	r.byTeam[item.TeamName] = &stored
	return nil
}

func (r *ProgressRepository) GetByTeam(_ context.Context, teamName string) (progress.Progress, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byTeam[teamName]
	if !ok {
		return progress.Progress{}, false, nil
	}
	return cloneProgress(item), true, nil
}

func (r *ProgressRepository) FindByIdentifier(_ context.Context, identifier string) (progress.Progress, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byTeam {
		if item.TeamID == identifier {
			return cloneProgress(item), true, nil
		}
	}
	if item, ok := r.byTeam[identifier]; ok {
		return cloneProgress(item), true, nil
	}
	return progress.Progress{}, false, nil
}

func (r *ProgressRepository) List(_ context.Context) ([]progress.Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byTeam))
	for name := range r.byTeam {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]progress.Progress, 0, len(names))
	for _, name := range names {
		out = append(out, cloneProgress(r.byTeam[name]))
	}
	return out, nil
}

func (r *ProgressRepository) ClaimDeviceLock(_ context.Context, teamName, deviceID, memberName string) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byTeam[teamName]
	if !ok {
		return "", "", fmt.Errorf("no progress for team %s", teamName)
	}

	if item.LockedDevice == "" {
		item.LockedDevice = deviceID
		item.LockedMember = memberName
	}
	return item.LockedDevice, item.LockedMember, nil
}

func (r *ProgressRepository) ConfirmSlot(_ context.Context, teamName string, slot progress.Slot, code string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byTeam[teamName]
	if !ok {
		return fmt.Errorf("no progress for team %s", teamName)
	}
	if item.At(slot) != nil {
		return progress.ErrSlotTaken
	}
	return item.Confirm(slot, code, at)
}

func (r *ProgressRepository) SetRestricted(_ context.Context, teamName string, restricted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byTeam[teamName]
	if !ok {
		return fmt.Errorf("no progress for team %s", teamName)
	}
	item.Restricted = restricted
	return nil
}

func cloneProgress(item *progress.Progress) progress.Progress {
	out := *item
	if item.Start != nil {
		c := *item.Start
		out.Start = &c
	}
	for i, conf := range item.Locations {
		if conf != nil {
			c := *conf
			out.Locations[i] = &c
		}
	}
	if item.End != nil {
		c := *item.End
		out.End = &c
	}
	return out
}

package memory

import (
	"context"
	"sync"

	"github.com/treasurerun/hunt-api/internal/domain/activity"
)

type ActivityRepository struct {
	mu      sync.RWMutex
	entries []activity.Entry
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Append(_ context.Context, item activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, item)
	return nil
}

func (r *ActivityRepository) List(_ context.Context) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
)

type CheckpointRepository struct {
	mu    sync.RWMutex
	hints map[string]string
}

func NewCheckpointRepository(items []checkpoint.Checkpoint) *CheckpointRepository {
	hints := make(map[string]string, len(items))
	for _, item := range items {
		hints[checkpoint.Normalize(item.Code)] = item.Hint
	}
	return &CheckpointRepository{hints: hints}
}

func (r *CheckpointRepository) ListCodes(_ context.Context, excludeCode string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exclude := checkpoint.Normalize(excludeCode)
	codes := make([]string, 0, len(r.hints))
	for code := range r.hints {
		if code == exclude {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *CheckpointRepository) GetHint(_ context.Context, code string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hint, ok := r.hints[checkpoint.Normalize(code)]
	return hint, ok, nil
}

func (r *CheckpointRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hints), nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
	"github.com/treasurerun/hunt-api/internal/platform/cache"
)

const checkpointPoolCacheKey = "checkpoint-pool"

// CheckpointPool serves the draw pool of checkpoint codes. Reads go through a
// TTL cache so route provisioning does not hit the catalog on every request;
// the start code never appears in the pool.
type CheckpointPool struct {
	catalog   checkpoint.Repository
	store     *cache.Store
	startCode string
}

func NewCheckpointPool(catalog checkpoint.Repository, store *cache.Store, startCode string) *CheckpointPool {
	return &CheckpointPool{
		catalog:   catalog,
		store:     store,
		startCode: startCode,
	}
}

func (p *CheckpointPool) Codes(ctx context.Context) ([]string, error) {
	value, err := p.store.GetOrLoad(ctx, checkpointPoolCacheKey, func(ctx context.Context) (any, error) {
		codes, err := p.catalog.ListCodes(ctx, p.startCode)
		if err != nil {
			return nil, fmt.Errorf("list checkpoint codes: %w", err)
		}
		return codes, nil
	})
	if err != nil {
		return nil, err
	}

	codes, ok := value.([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected checkpoint pool cache entry %T", value)
	}
	if len(codes) == 0 {
		return nil, ErrNoCheckpointsAvailable
	}

	return codes, nil
}

// Invalidate drops the cached pool so the next read reflects catalog changes.
func (p *CheckpointPool) Invalidate(ctx context.Context) {
	p.store.Delete(ctx, checkpointPoolCacheKey)
}

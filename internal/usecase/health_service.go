package usecase

import (
	"context"
	"fmt"

	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
)

// HealthService answers readiness probes with a cheap catalog read, proving
// the storage backend is reachable.
type HealthService struct {
	catalog checkpoint.Repository
}

func NewHealthService(catalog checkpoint.Repository) *HealthService {
	return &HealthService{catalog: catalog}
}

func (s *HealthService) Check(ctx context.Context) error {
	if _, err := s.catalog.Count(ctx); err != nil {
		return fmt.Errorf("count checkpoints: %w", err)
	}
	return nil
}

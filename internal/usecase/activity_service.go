package usecase

import (
	"context"
	"fmt"

	"github.com/treasurerun/hunt-api/internal/domain/activity"
)

// ActivityService exposes the append-only confirmation log.
type ActivityService struct {
	activityRepo activity.Repository
}

func NewActivityService(activityRepo activity.Repository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

func (s *ActivityService) List(ctx context.Context) ([]activity.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "Usecase.ActivityService.List")
	defer span.End()

	entries, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

package httpapi

import (
	"context"
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/treasurerun/hunt-api/internal/platform/logging"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

type Handler struct {
	verificationService *usecase.VerificationService
	provisioningService *usecase.ProvisioningService
	leaderboardService  *usecase.LeaderboardService
	moderationService   *usecase.ModerationService
	activityService     *usecase.ActivityService
	dashboardService    *usecase.DashboardService
	healthService       *usecase.HealthService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	verificationService *usecase.VerificationService,
	provisioningService *usecase.ProvisioningService,
	leaderboardService *usecase.LeaderboardService,
	moderationService *usecase.ModerationService,
	activityService *usecase.ActivityService,
	dashboardService *usecase.DashboardService,
	healthService *usecase.HealthService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		verificationService: verificationService,
		provisioningService: provisioningService,
		leaderboardService:  leaderboardService,
		moderationService:   moderationService,
		activityService:     activityService,
		dashboardService:    dashboardService,
		healthService:       healthService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

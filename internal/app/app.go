package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/treasurerun/hunt-api/internal/config"
	"github.com/treasurerun/hunt-api/internal/domain/activity"
	"github.com/treasurerun/hunt-api/internal/domain/checkpoint"
	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/domain/route"
	"github.com/treasurerun/hunt-api/internal/domain/team"
	"github.com/treasurerun/hunt-api/internal/infrastructure/repository/memory"
	"github.com/treasurerun/hunt-api/internal/infrastructure/repository/postgres"
	"github.com/treasurerun/hunt-api/internal/interfaces/httpapi"
	"github.com/treasurerun/hunt-api/internal/platform/cache"
	idgen "github.com/treasurerun/hunt-api/internal/platform/id"
	"github.com/treasurerun/hunt-api/internal/platform/logging"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

type repositories struct {
	teams    team.Repository
	routes   route.Repository
	progress progress.Repository
	catalog  checkpoint.Repository
	activity activity.Repository
}

// NewHTTPServer assembles the repositories, services, and HTTP router into a
// ready-to-run server. The returned cleanup releases backend resources (the
// database pool) and must be called after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	pool := usecase.NewCheckpointPool(repos.catalog, cache.NewStore(cfg.CheckpointCacheTTL), cfg.StartCode)

	verificationSvc := usecase.NewVerificationService(
		repos.routes,
		repos.progress,
		repos.catalog,
		repos.activity,
		cfg.EventLocation(),
		logger,
	)
	provisioningSvc := usecase.NewProvisioningService(
		repos.teams,
		repos.routes,
		repos.progress,
		pool,
		idgen.NewRandomGenerator(cfg.TeamIDPrefix),
		cfg.StartCode,
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(repos.progress, logger)
	moderationSvc := usecase.NewModerationService(repos.routes, repos.progress, logger)
	activitySvc := usecase.NewActivityService(repos.activity)
	dashboardSvc := usecase.NewDashboardService(moderationSvc, leaderboardSvc, activitySvc, logger)
	healthSvc := usecase.NewHealthService(repos.catalog)

	handler := httpapi.NewHandler(
		verificationSvc,
		provisioningSvc,
		leaderboardSvc,
		moderationSvc,
		activitySvc,
		dashboardSvc,
		healthSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Info("store backend", "backend", config.StoreMemory)
		return repositories{
			teams:    memory.NewTeamRepository(),
			routes:   memory.NewRouteRepository(),
			progress: memory.NewProgressRepository(),
			catalog:  memory.NewCheckpointRepository(memory.SeedCheckpoints()),
			activity: memory.NewActivityRepository(),
		}, func() error { return nil }, nil

	case config.StorePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("store backend", "backend", config.StorePostgres, "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			teams:    postgres.NewTeamRepository(db),
			routes:   postgres.NewRouteRepository(db),
			progress: postgres.NewProgressRepository(db),
			catalog:  postgres.NewCheckpointRepository(db),
			activity: postgres.NewActivityRepository(db),
		}, db.Close, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}

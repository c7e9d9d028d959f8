package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/typerliga/prediction-league/external/apifootball"
	"github.com/typerliga/prediction-league/internal/config"
	"github.com/typerliga/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/typerliga/prediction-league/internal/interfaces/httpapi"
	"github.com/typerliga/prediction-league/internal/platform/accesscode"
	"github.com/typerliga/prediction-league/internal/platform/logging"
	"github.com/typerliga/prediction-league/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Services bundles the usecase layer so the HTTP server and the job
// binaries share one wiring path.
type Services struct {
	Catalog    *usecase.CatalogService
	Group      *usecase.GroupService
	Prediction *usecase.PredictionService
	Ranking    *usecase.RankingService
	Sync       *usecase.SyncService
	Scoring    *usecase.ScoringService
}

func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, true)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func NewServices(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *Services {
	leagueRepo := postgres.NewLeagueRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	fixtureRepo := postgres.NewFixtureRepository(db)
	groupRepo := postgres.NewUserGroupRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIKey:     cfg.APIFootballKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger,
	})

	return &Services{
		Catalog:    usecase.NewCatalogService(leagueRepo, fixtureRepo),
		Group:      usecase.NewGroupService(groupRepo, accesscode.NewRandomGenerator(accesscode.DefaultLength)),
		Prediction: usecase.NewPredictionService(groupRepo, fixtureRepo, predictionRepo),
		Ranking:    usecase.NewRankingService(groupRepo, predictionRepo),
		Sync: usecase.NewSyncService(
			provider,
			leagueRepo,
			seasonRepo,
			teamRepo,
			fixtureRepo,
			usecase.SyncConfig{
				MaxWorkers:         cfg.SyncWorkers,
				AllowedSeasonYears: cfg.SyncAllowedSeasonYears,
			},
			logger,
		),
		Scoring: usecase.NewScoringService(predictionRepo, logger),
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		services.Catalog,
		services.Group,
		services.Prediction,
		services.Ranking,
		services.Sync,
		services.Scoring,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

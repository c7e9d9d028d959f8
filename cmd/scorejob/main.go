package main

import (
	"context"
	"os"

	"github.com/typerliga/prediction-league/internal/app"
	"github.com/typerliga/prediction-league/internal/config"
	"github.com/typerliga/prediction-league/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	services := app.NewServices(cfg, db, logger)

	updated, err := services.Scoring.RunScoringBatch(ctx)
	if err != nil {
		logger.Error("scoring batch failed", "error", err)
		os.Exit(1)
	}

	logger.Info("scoring batch finished", "updated", updated)
}

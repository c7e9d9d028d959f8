package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/typerliga/prediction-league/internal/app"
	"github.com/typerliga/prediction-league/internal/config"
	"github.com/typerliga/prediction-league/internal/platform/logging"
	"github.com/typerliga/prediction-league/internal/usecase"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		leagueExternalID = flag.Int64("league", 106, "provider league id")
		seasonStartYear  = flag.Int("season", 0, "season start year, e.g. 2023")
		windowStart      = flag.String("from", "", "window start date (YYYY-MM-DD)")
		windowEnd        = flag.String("to", "", "window end date (YYYY-MM-DD)")
		referenceDate    = flag.String("reference-date", "", "date standing in for today (YYYY-MM-DD, default today)")
		seasonsOnly      = flag.Bool("seasons-only", false, "only refresh the season catalogue and exit")
		teamsOnly        = flag.Bool("teams-only", false, "only sync the league season's teams and exit")
	)
	flag.Parse()

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

	if *seasonsOnly {
		count, err := services.Sync.SyncSeasons(ctx)
		if err != nil {
			logger.Error("season sync failed", "error", err)
			os.Exit(1)
		}
		logger.Info("season sync finished", "processed", count)
		return
	}

	if *teamsOnly {
		count, err := services.Sync.SyncTeams(ctx, *leagueExternalID, *seasonStartYear)
		if err != nil {
			logger.Error("team sync failed", "error", err)
			os.Exit(1)
		}
		logger.Info("team sync finished", "processed", count)
		return
	}

	input, err := buildFixtureInput(*leagueExternalID, *seasonStartYear, *windowStart, *windowEnd, *referenceDate)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	count, err := services.Sync.SyncFixtures(ctx, input)
	if err != nil {
		logger.Error("fixture sync failed", "error", err)
		os.Exit(1)
	}
	logger.Info("fixture sync finished",
		"processed", count,
		"league_external_id", input.LeagueExternalID,
		"season_start_year", input.SeasonStartYear,
	)
}

func buildFixtureInput(leagueExternalID int64, seasonStartYear int, from, to, reference string) (usecase.SyncFixturesInput, error) {
	windowStart, err := parseDate("from", from)
	if err != nil {
		return usecase.SyncFixturesInput{}, err
	}
	windowEnd, err := parseDate("to", to)
	if err != nil {
		return usecase.SyncFixturesInput{}, err
	}

	referenceDate := time.Now()
	if reference != "" {
		referenceDate, err = parseDate("reference-date", reference)
		if err != nil {
			return usecase.SyncFixturesInput{}, err
		}
	}

	return usecase.SyncFixturesInput{
		LeagueExternalID: leagueExternalID,
		SeasonStartYear:  seasonStartYear,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		ReferenceDate:    referenceDate,
	}, nil
}

func parseDate(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("-%s is required", name)
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: expected YYYY-MM-DD, got %q", name, raw)
	}
	return parsed, nil
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/league"
	"github.com/typerliga/prediction-league/internal/domain/season"
	"github.com/typerliga/prediction-league/internal/domain/team"
	"github.com/typerliga/prediction-league/internal/platform/logging"
)

const dateLayout = "2006-01-02"

// SyncService reconciles provider records into the local store. League,
// season and team rows are created only here; fixtures are refreshed on every
// run and never deleted. Runs are cron-style and assumed non-overlapping per
// season.
type SyncService struct {
	provider    FixtureProvider
	leagueRepo  league.Repository
	seasonRepo  season.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	logger      *logging.Logger
	maxWorkers  int
	// AllowedSeasonYears narrows SyncFixtures to the seasons covered by the
	// provider plan; empty means no restriction.
	allowedSeasonYears map[int]struct{}
}

type SyncConfig struct {
	// MaxWorkers caps the fixture upsert pool; values below 2 keep upserts
	// sequential.
	MaxWorkers int
	// AllowedSeasonYears lists the season start years the provider plan
	// covers; empty means all years are accepted.
	AllowedSeasonYears []int
}

type SyncFixturesInput struct {
	LeagueExternalID int64
	SeasonStartYear  int
	WindowStart      time.Time
	WindowEnd        time.Time
	// ReferenceDate stands in for "today": fixtures dated strictly after it
	// are stored as not started with no scores regardless of what the
	// provider reports.
	ReferenceDate time.Time
}

func NewSyncService(
	provider FixtureProvider,
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	var allowed map[int]struct{}
	if len(cfg.AllowedSeasonYears) > 0 {
		allowed = make(map[int]struct{}, len(cfg.AllowedSeasonYears))
		for _, year := range cfg.AllowedSeasonYears {
			allowed[year] = struct{}{}
		}
	}

	return &SyncService{
		provider:           provider,
		leagueRepo:         leagueRepo,
		seasonRepo:         seasonRepo,
		teamRepo:           teamRepo,
		fixtureRepo:        fixtureRepo,
		logger:             logger,
		maxWorkers:         cfg.MaxWorkers,
		allowedSeasonYears: allowed,
	}
}

// SyncFixtures pulls the fixtures of one league season inside a date window
// and upserts them by external id. It returns how many records reached the
// upsert step; records skipped for a missing team or missing kickoff date do
// not count. Re-running the same window reapplies the same derived fields
// without duplicates.
func (s *SyncService) SyncFixtures(ctx context.Context, input SyncFixturesInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncFixtures")
	defer span.End()

	if input.LeagueExternalID <= 0 {
		return 0, fmt.Errorf("%w: league external id is required", ErrInvalidInput)
	}
	if input.SeasonStartYear <= 0 {
		return 0, fmt.Errorf("%w: season start year is required", ErrInvalidInput)
	}
	if input.WindowStart.IsZero() || input.WindowEnd.IsZero() || input.ReferenceDate.IsZero() {
		return 0, fmt.Errorf("%w: window start, window end, and reference date are required", ErrInvalidInput)
	}
	if input.WindowEnd.Before(input.WindowStart) {
		return 0, fmt.Errorf("%w: window end must not be before window start", ErrInvalidInput)
	}
	if s.allowedSeasonYears != nil {
		if _, ok := s.allowedSeasonYears[input.SeasonStartYear]; !ok {
			return 0, fmt.Errorf("%w: season year %d is outside the provider plan", ErrInvalidInput, input.SeasonStartYear)
		}
	}

	localSeason, exists, err := s.seasonRepo.GetByLeagueExternalIDAndYear(ctx, input.LeagueExternalID, input.SeasonStartYear)
	if err != nil {
		return 0, fmt.Errorf("get season by league and year: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: league_external_id=%d start_year=%d", ErrUnknownSeason, input.LeagueExternalID, input.SeasonStartYear)
	}

	records, err := s.provider.FetchFixtures(ctx, FixtureQuery{
		LeagueExternalID: input.LeagueExternalID,
		SeasonYear:       input.SeasonStartYear,
		From:             input.WindowStart,
		To:               input.WindowEnd,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: fetch fixtures league_external_id=%d: %v", ErrProvider, input.LeagueExternalID, err)
	}

	referenceDate := input.ReferenceDate.Format(dateLayout)

	mapped := make([]fixture.Fixture, 0, len(records))
	for _, record := range records {
		item, ok, mapErr := s.mapFixtureRecord(ctx, record, localSeason.ID, referenceDate)
		if mapErr != nil {
			return 0, mapErr
		}
		if !ok {
			continue
		}
		mapped = append(mapped, item)
	}

	return s.upsertFixtures(ctx, mapped), nil
}

// mapFixtureRecord derives the local row for one provider record. A false
// second return means the record is skipped: a missing team or a missing
// kickoff date drops the single record and never aborts the batch. Store
// errors do abort.
func (s *SyncService) mapFixtureRecord(ctx context.Context, record ExternalFixture, seasonID int64, referenceDate string) (fixture.Fixture, bool, error) {
	homeTeam, exists, err := s.teamRepo.GetByExternalID(ctx, record.HomeTeamExternalID)
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("get home team by external id: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "skip fixture: home team unknown locally",
			"fixture_external_id", record.ExternalID,
			"team_external_id", record.HomeTeamExternalID,
		)
		return fixture.Fixture{}, false, nil
	}

	awayTeam, exists, err := s.teamRepo.GetByExternalID(ctx, record.AwayTeamExternalID)
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("get away team by external id: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "skip fixture: away team unknown locally",
			"fixture_external_id", record.ExternalID,
			"team_external_id", record.AwayTeamExternalID,
		)
		return fixture.Fixture{}, false, nil
	}

	if record.KickoffAt == nil {
		s.logger.WarnContext(ctx, "skip fixture: provider record has no date",
			"fixture_external_id", record.ExternalID,
		)
		return fixture.Fixture{}, false, nil
	}

	item := fixture.Fixture{
		SeasonID:   seasonID,
		KickoffAt:  *record.KickoffAt,
		HomeTeamID: homeTeam.ID,
		AwayTeamID: awayTeam.ID,
		ExternalID: record.ExternalID,
		Round:      ParseRoundNumber(record.RoundLabel),
		RoundName:  record.RoundLabel,
	}

	// Time-split simulation: fixtures dated after the reference date are
	// stored as if they had not been played, so a restricted-data deployment
	// never leaks real results. The comparison uses date portions only, in
	// the provider-reported offset.
	if record.KickoffAt.Format(dateLayout) > referenceDate {
		item.Status = fixture.StatusNotStarted
		item.HomeScore = nil
		item.AwayScore = nil
	} else {
		item.Status = fixture.StatusFinished
		item.HomeScore = record.HomeScore
		item.AwayScore = record.AwayScore
	}

	return item, true, nil
}

// upsertFixtures writes the mapped rows, on a worker pool when configured.
// Each upsert is independently transactional keyed by external id, so
// concurrent upserts of different fixtures never conflict. A failed upsert is
// logged and does not block the rest.
func (s *SyncService) upsertFixtures(ctx context.Context, items []fixture.Fixture) int {
	if len(items) == 0 {
		return 0
	}

	if s.maxWorkers < 2 || len(items) < 2 {
		return s.upsertFixturesSequential(ctx, items)
	}

	workerCount := s.maxWorkers
	if workerCount > len(items) {
		workerCount = len(items)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture upsert pool unavailable, falling back to sequential upserts", "error", err)
		return s.upsertFixturesSequential(ctx, items)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var processed atomic.Int64
	for _, item := range items {
		item := item
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if upsertErr := s.fixtureRepo.Upsert(ctx, item); upsertErr != nil {
				s.logger.ErrorContext(ctx, "upsert fixture failed",
					"fixture_external_id", item.ExternalID,
					"error", upsertErr,
				)
				return
			}
			processed.Add(1)
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			task()
		}
	}
	wg.Wait()

	return int(processed.Load())
}

func (s *SyncService) upsertFixturesSequential(ctx context.Context, items []fixture.Fixture) int {
	processed := 0
	for _, item := range items {
		if err := s.fixtureRepo.Upsert(ctx, item); err != nil {
			s.logger.ErrorContext(ctx, "upsert fixture failed",
				"fixture_external_id", item.ExternalID,
				"error", err,
			)
			continue
		}
		processed++
	}
	return processed
}

// SyncSeasons fetches the provider's season-year catalogue and makes sure
// every known league has a season row per year. Existing rows are left alone.
// The returned count covers every (league, year) pair visited, matching the
// fixture counter's "processed, not created" semantics.
func (s *SyncService) SyncSeasons(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSeasons")
	defer span.End()

	years, err := s.provider.FetchSeasonYears(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch season years: %v", ErrProvider, err)
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list leagues: %w", err)
	}

	count := 0
	for _, item := range leagues {
		for _, year := range years {
			_, created, err := s.seasonRepo.GetOrCreate(ctx, season.Season{
				LeagueID:  item.ID,
				Year:      season.YearLabel(year),
				StartYear: year,
			})
			if err != nil {
				return count, fmt.Errorf("get or create season league_id=%d year=%d: %w", item.ID, year, err)
			}
			if created {
				s.logger.InfoContext(ctx, "season created", "league_id", item.ID, "start_year", year)
			}
			count++
		}
	}

	return count, nil
}

// SyncTeams fetches the teams of one league season, creates the missing ones
// by external id, and links each to the season. Linking twice is a no-op.
func (s *SyncService) SyncTeams(ctx context.Context, leagueExternalID int64, seasonStartYear int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeams")
	defer span.End()

	if leagueExternalID <= 0 {
		return 0, fmt.Errorf("%w: league external id is required", ErrInvalidInput)
	}
	if seasonStartYear <= 0 {
		return 0, fmt.Errorf("%w: season start year is required", ErrInvalidInput)
	}

	records, err := s.provider.FetchTeams(ctx, leagueExternalID, seasonStartYear)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch teams league_external_id=%d: %v", ErrProvider, leagueExternalID, err)
	}

	localSeason, exists, err := s.seasonRepo.GetByLeagueExternalIDAndYear(ctx, leagueExternalID, seasonStartYear)
	if err != nil {
		return 0, fmt.Errorf("get season by league and year: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: league_external_id=%d start_year=%d", ErrUnknownSeason, leagueExternalID, seasonStartYear)
	}

	count := 0
	for _, record := range records {
		if record.ExternalID <= 0 || strings.TrimSpace(record.Name) == "" {
			s.logger.WarnContext(ctx, "skip team: incomplete provider record", "team_external_id", record.ExternalID)
			continue
		}

		stored, _, err := s.teamRepo.GetOrCreate(ctx, team.Team{
			Name:       strings.TrimSpace(record.Name),
			ExternalID: record.ExternalID,
		})
		if err != nil {
			return count, fmt.Errorf("get or create team external_id=%d: %w", record.ExternalID, err)
		}
		if err := s.teamRepo.AddSeason(ctx, stored.ID, localSeason.ID); err != nil {
			return count, fmt.Errorf("add team season link team_id=%d season_id=%d: %w", stored.ID, localSeason.ID, err)
		}
		count++
	}

	return count, nil
}

// ParseRoundNumber extracts the trailing integer out of a provider round
// label such as "Regular Season - 7". A label that does not end in an integer
// yields nil; the raw label is stored either way.
func ParseRoundNumber(label string) *int {
	if strings.TrimSpace(label) == "" {
		return nil
	}
	parts := strings.Split(label, "-")
	last := strings.TrimSpace(parts[len(parts)-1])
	value, err := strconv.Atoi(last)
	if err != nil {
		return nil
	}
	return &value
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/league"
	"github.com/typerliga/prediction-league/internal/domain/season"
	"github.com/typerliga/prediction-league/internal/infrastructure/repository/memory"
	"github.com/typerliga/prediction-league/internal/platform/logging"
)

type stubProvider struct {
	years    []int
	teams    []ExternalTeam
	fixtures []ExternalFixture
	err      error
}

func (p *stubProvider) FetchSeasonYears(context.Context) ([]int, error) {
	return p.years, p.err
}

func (p *stubProvider) FetchTeams(context.Context, int64, int) ([]ExternalTeam, error) {
	return p.teams, p.err
}

func (p *stubProvider) FetchFixtures(context.Context, FixtureQuery) ([]ExternalFixture, error) {
	return p.fixtures, p.err
}

type syncFixtures struct {
	provider *stubProvider
	fixtures *memory.FixtureRepository
	teams    *memory.TeamRepository
	seasons  *memory.SeasonRepository
	service  *SyncService
}

func newSyncSetup(t *testing.T, provider *stubProvider, cfg SyncConfig) *syncFixtures {
	t.Helper()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	seasons := memory.NewSeasonRepository(leagues, memory.SeedSeasons())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	fixtures := memory.NewFixtureRepository(nil)

	return &syncFixtures{
		provider: provider,
		fixtures: fixtures,
		teams:    teams,
		seasons:  seasons,
		service:  NewSyncService(provider, leagues, seasons, teams, fixtures, cfg, logging.NewNop()),
	}
}

func fixtureInput(reference string) SyncFixturesInput {
	return SyncFixturesInput{
		LeagueExternalID: 106,
		SeasonStartYear:  2023,
		WindowStart:      mustDate("2023-09-01"),
		WindowEnd:        mustDate("2023-09-30"),
		ReferenceDate:    mustDate(reference),
	}
}

func mustDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestSyncFixtures_TimeSplitMasksFutureResults(t *testing.T) {
	played := time.Date(2023, time.September, 10, 18, 0, 0, 0, time.UTC)
	future := time.Date(2023, time.September, 25, 20, 30, 0, 0, time.UTC)

	setup := newSyncSetup(t, &stubProvider{
		fixtures: []ExternalFixture{
			{
				ExternalID:         9001,
				KickoffAt:          timePtr(played),
				Status:             fixture.StatusFinished,
				HomeTeamExternalID: 339,
				AwayTeamExternalID: 347,
				HomeScore:          intPtr(2),
				AwayScore:          intPtr(1),
				RoundLabel:         "Regular Season - 7",
			},
			{
				ExternalID:         9002,
				KickoffAt:          timePtr(future),
				Status:             fixture.StatusFinished,
				HomeTeamExternalID: 347,
				AwayTeamExternalID: 339,
				HomeScore:          intPtr(3),
				AwayScore:          intPtr(0),
				RoundLabel:         "Regular Season - 9",
			},
		},
	}, SyncConfig{})

	processed, err := setup.service.SyncFixtures(context.Background(), fixtureInput("2023-09-20"))
	if err != nil {
		t.Fatalf("sync fixtures: %v", err)
	}
	if processed != 2 {
		t.Fatalf("unexpected processed count: got=%d want=2", processed)
	}

	past, exists, err := setup.fixtures.GetByExternalID(context.Background(), 9001)
	if err != nil || !exists {
		t.Fatalf("expected fixture 9001 stored, exists=%v err=%v", exists, err)
	}
	if past.Status != fixture.StatusFinished {
		t.Fatalf("past fixture status: got=%s want=%s", past.Status, fixture.StatusFinished)
	}
	if past.HomeScore == nil || *past.HomeScore != 2 || past.AwayScore == nil || *past.AwayScore != 1 {
		t.Fatalf("past fixture must keep the provider result")
	}
	if past.Round == nil || *past.Round != 7 {
		t.Fatalf("past fixture round: got=%v want=7", past.Round)
	}

	masked, exists, err := setup.fixtures.GetByExternalID(context.Background(), 9002)
	if err != nil || !exists {
		t.Fatalf("expected fixture 9002 stored, exists=%v err=%v", exists, err)
	}
	if masked.Status != fixture.StatusNotStarted {
		t.Fatalf("future fixture status: got=%s want=%s", masked.Status, fixture.StatusNotStarted)
	}
	if masked.HomeScore != nil || masked.AwayScore != nil {
		t.Fatalf("future fixture must have no scores")
	}
}

func TestSyncFixtures_ReferenceDateBoundaryIsInclusive(t *testing.T) {
	// A fixture dated exactly on the reference date counts as played: only
	// strictly later dates are masked.
	onReference := time.Date(2023, time.September, 20, 21, 0, 0, 0, time.UTC)

	setup := newSyncSetup(t, &stubProvider{
		fixtures: []ExternalFixture{
			{
				ExternalID:         9003,
				KickoffAt:          timePtr(onReference),
				Status:             fixture.StatusFinished,
				HomeTeamExternalID: 339,
				AwayTeamExternalID: 347,
				HomeScore:          intPtr(1),
				AwayScore:          intPtr(1),
			},
		},
	}, SyncConfig{})

	if _, err := setup.service.SyncFixtures(context.Background(), fixtureInput("2023-09-20")); err != nil {
		t.Fatalf("sync fixtures: %v", err)
	}

	stored, _, err := setup.fixtures.GetByExternalID(context.Background(), 9003)
	if err != nil {
		t.Fatalf("get fixture: %v", err)
	}
	if stored.Status != fixture.StatusFinished {
		t.Fatalf("boundary fixture status: got=%s want=%s", stored.Status, fixture.StatusFinished)
	}
	if stored.HomeScore == nil || stored.AwayScore == nil {
		t.Fatalf("boundary fixture must keep its result")
	}
}

func TestSyncFixtures_RerunIsIdempotent(t *testing.T) {
	kickoff := time.Date(2023, time.September, 10, 18, 0, 0, 0, time.UTC)
	setup := newSyncSetup(t, &stubProvider{
		fixtures: []ExternalFixture{
			{
				ExternalID:         9001,
				KickoffAt:          timePtr(kickoff),
				Status:             fixture.StatusFinished,
				HomeTeamExternalID: 339,
				AwayTeamExternalID: 347,
				HomeScore:          intPtr(2),
				AwayScore:          intPtr(0),
			},
		},
	}, SyncConfig{MaxWorkers: 4})

	for run := 0; run < 2; run++ {
		processed, err := setup.service.SyncFixtures(context.Background(), fixtureInput("2023-09-20"))
		if err != nil {
			t.Fatalf("run %d: sync fixtures: %v", run, err)
		}
		if processed != 1 {
			t.Fatalf("run %d: unexpected processed count: got=%d want=1", run, processed)
		}
	}

	if got := setup.fixtures.Count(); got != 1 {
		t.Fatalf("rerun must not duplicate fixtures: got=%d want=1", got)
	}
}

func TestSyncFixtures_SkipsIncompleteRecords(t *testing.T) {
	kickoff := time.Date(2023, time.September, 10, 18, 0, 0, 0, time.UTC)
	setup := newSyncSetup(t, &stubProvider{
		fixtures: []ExternalFixture{
			// Unknown home team locally.
			{
				ExternalID:         9010,
				KickoffAt:          timePtr(kickoff),
				HomeTeamExternalID: 99999,
				AwayTeamExternalID: 347,
			},
			// Provider record without a kickoff date.
			{
				ExternalID:         9011,
				HomeTeamExternalID: 339,
				AwayTeamExternalID: 347,
			},
			// Complete record.
			{
				ExternalID:         9012,
				KickoffAt:          timePtr(kickoff),
				Status:             fixture.StatusFinished,
				HomeTeamExternalID: 339,
				AwayTeamExternalID: 347,
				HomeScore:          intPtr(0),
				AwayScore:          intPtr(0),
			},
		},
	}, SyncConfig{})

	processed, err := setup.service.SyncFixtures(context.Background(), fixtureInput("2023-09-20"))
	if err != nil {
		t.Fatalf("sync fixtures: %v", err)
	}
	if processed != 1 {
		t.Fatalf("skipped records must not count: got=%d want=1", processed)
	}
	if got := setup.fixtures.Count(); got != 1 {
		t.Fatalf("unexpected stored fixtures: got=%d want=1", got)
	}
}

func TestSyncFixtures_Validation(t *testing.T) {
	setup := newSyncSetup(t, &stubProvider{}, SyncConfig{AllowedSeasonYears: []int{2023}})

	t.Run("season year outside provider plan", func(t *testing.T) {
		input := fixtureInput("2023-09-20")
		input.SeasonStartYear = 2019
		_, err := setup.service.SyncFixtures(context.Background(), input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("window end before start", func(t *testing.T) {
		input := fixtureInput("2023-09-20")
		input.WindowEnd = input.WindowStart.AddDate(0, 0, -1)
		_, err := setup.service.SyncFixtures(context.Background(), input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown season", func(t *testing.T) {
		input := fixtureInput("2023-09-20")
		input.LeagueExternalID = 555
		_, err := setup.service.SyncFixtures(context.Background(), input)
		if !errors.Is(err, ErrUnknownSeason) {
			t.Fatalf("expected ErrUnknownSeason, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		failing := newSyncSetup(t, &stubProvider{err: fmt.Errorf("upstream 500")}, SyncConfig{})
		_, err := failing.service.SyncFixtures(context.Background(), fixtureInput("2023-09-20"))
		if !errors.Is(err, ErrProvider) {
			t.Fatalf("expected ErrProvider, got %v", err)
		}
	})
}

func TestSyncSeasons_CreatesMissingYearsOnce(t *testing.T) {
	leagues := memory.NewLeagueRepository([]league.League{
		{ID: 1, Name: "Ekstraklasa", Country: "Poland", Level: 1, ExternalID: 106},
	})
	seasons := memory.NewSeasonRepository(leagues, nil)
	service := NewSyncService(
		&stubProvider{years: []int{2022, 2023}},
		leagues,
		seasons,
		memory.NewTeamRepository(nil),
		memory.NewFixtureRepository(nil),
		SyncConfig{},
		logging.NewNop(),
	)

	for run := 0; run < 2; run++ {
		count, err := service.SyncSeasons(context.Background())
		if err != nil {
			t.Fatalf("run %d: sync seasons: %v", run, err)
		}
		if count != 2 {
			t.Fatalf("run %d: unexpected count: got=%d want=2", run, count)
		}
	}

	for _, year := range []int{2022, 2023} {
		stored, exists, err := seasons.GetByLeagueExternalIDAndYear(context.Background(), 106, year)
		if err != nil || !exists {
			t.Fatalf("expected season for year %d, exists=%v err=%v", year, exists, err)
		}
		if stored.Year != season.YearLabel(year) {
			t.Fatalf("season label: got=%s want=%s", stored.Year, season.YearLabel(year))
		}
	}
}

func TestSyncTeams_CreatesAndLinks(t *testing.T) {
	setup := newSyncSetup(t, &stubProvider{
		teams: []ExternalTeam{
			{ExternalID: 339, Name: "Legia Warszawa"},
			{ExternalID: 8000, Name: "Widzew Łódź"},
			{ExternalID: 0, Name: "Broken"},
			{ExternalID: 8001, Name: "   "},
		},
	}, SyncConfig{})

	for run := 0; run < 2; run++ {
		count, err := setup.service.SyncTeams(context.Background(), 106, 2023)
		if err != nil {
			t.Fatalf("run %d: sync teams: %v", run, err)
		}
		if count != 2 {
			t.Fatalf("run %d: unexpected count: got=%d want=2", run, count)
		}
	}

	created, exists, err := setup.teams.GetByExternalID(context.Background(), 8000)
	if err != nil || !exists {
		t.Fatalf("expected team 8000 created, exists=%v err=%v", exists, err)
	}
	if created.Name != "Widzew Łódź" {
		t.Fatalf("unexpected team name: %s", created.Name)
	}
	if got := setup.teams.SeasonCount(created.ID); got != 1 {
		t.Fatalf("relinking must be a no-op: got=%d want=1", got)
	}
}

func TestSyncTeams_UnknownSeason(t *testing.T) {
	setup := newSyncSetup(t, &stubProvider{
		teams: []ExternalTeam{{ExternalID: 339, Name: "Legia Warszawa"}},
	}, SyncConfig{})

	_, err := setup.service.SyncTeams(context.Background(), 106, 1995)
	if !errors.Is(err, ErrUnknownSeason) {
		t.Fatalf("expected ErrUnknownSeason, got %v", err)
	}
}

func TestParseRoundNumber(t *testing.T) {
	tests := []struct {
		label string
		want  *int
	}{
		{label: "Regular Season - 7", want: intPtr(7)},
		{label: "Regular Season - 21", want: intPtr(21)},
		{label: "Relegation Round", want: nil},
		{label: "", want: nil},
		{label: "  ", want: nil},
	}

	for _, tt := range tests {
		got := ParseRoundNumber(tt.label)
		switch {
		case tt.want == nil && got != nil:
			t.Fatalf("ParseRoundNumber(%q)=%d want=nil", tt.label, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Fatalf("ParseRoundNumber(%q)=%v want=%d", tt.label, got, *tt.want)
		}
	}
}

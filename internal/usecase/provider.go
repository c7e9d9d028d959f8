package usecase

import (
	"context"
	"time"
)

// FixtureProvider is the read surface of the external football data source.
// Implementations return raw provider records; all mapping onto local
// entities happens in the sync service.
type FixtureProvider interface {
	// FetchSeasonYears returns the provider's season-year catalogue.
	FetchSeasonYears(ctx context.Context) ([]int, error)
	// FetchTeams returns the teams playing a league season.
	FetchTeams(ctx context.Context, leagueExternalID int64, seasonYear int) ([]ExternalTeam, error)
	// FetchFixtures returns the fixtures of a league season inside a date
	// window.
	FetchFixtures(ctx context.Context, query FixtureQuery) ([]ExternalFixture, error)
}

type FixtureQuery struct {
	LeagueExternalID int64
	SeasonYear       int
	From             time.Time
	To               time.Time
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
}

// ExternalFixture is one provider fixture record. KickoffAt keeps the
// provider-reported offset; a nil value means the provider sent no date.
type ExternalFixture struct {
	ExternalID         int64
	KickoffAt          *time.Time
	Status             string
	HomeTeamExternalID int64
	AwayTeamExternalID int64
	HomeScore          *int
	AwayScore          *int
	RoundLabel         string
}

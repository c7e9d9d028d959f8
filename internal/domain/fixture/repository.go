package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
	GetByExternalID(ctx context.Context, externalID int64) (Fixture, bool, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Fixture, error)
	ListBySeasonAndRound(ctx context.Context, seasonID int64, round int) ([]Fixture, error)
	// Upsert inserts or refreshes the row keyed by external id. Re-running
	// the same payload reapplies the same fields without duplicates.
	Upsert(ctx context.Context, item Fixture) error
}

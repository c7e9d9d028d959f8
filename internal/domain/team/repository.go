package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
	// GetOrCreate inserts the team unless its external id already exists and
	// returns the stored row either way.
	GetOrCreate(ctx context.Context, item Team) (Team, bool, error)
	// AddSeason links the team to a season. Adding an existing link is a
	// no-op.
	AddSeason(ctx context.Context, teamID, seasonID int64) error
}

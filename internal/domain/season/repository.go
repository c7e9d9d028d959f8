package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	// GetByLeagueExternalIDAndYear resolves a season through its league's
	// provider id, the lookup the reconciliation pipeline keys on.
	GetByLeagueExternalIDAndYear(ctx context.Context, leagueExternalID int64, startYear int) (Season, bool, error)
	// GetOrCreate inserts the season unless (league, start_year) already
	// exists and returns the stored row either way.
	GetOrCreate(ctx context.Context, item Season) (Season, bool, error)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/league"
)

// CatalogService is the read surface over synced reference data.
type CatalogService struct {
	leagueRepo  league.Repository
	fixtureRepo fixture.Repository
}

func NewCatalogService(leagueRepo league.Repository, fixtureRepo fixture.Repository) *CatalogService {
	return &CatalogService{
		leagueRepo:  leagueRepo,
		fixtureRepo: fixtureRepo,
	}
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListLeagues")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

// ListFixtures returns a season's fixtures, narrowed to one round when round
// is non-nil.
func (s *CatalogService) ListFixtures(ctx context.Context, seasonID int64, round *int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListFixtures")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	if round != nil {
		items, err := s.fixtureRepo.ListBySeasonAndRound(ctx, seasonID, *round)
		if err != nil {
			return nil, fmt.Errorf("list fixtures by season and round: %w", err)
		}
		return items, nil
	}

	items, err := s.fixtureRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by season: %w", err)
	}
	return items, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
)

type FixtureRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{
		nextID: 1,
		items:  make(map[int64]fixture.Fixture, len(fixtures)),
	}
	for _, item := range fixtures {
		if item.ID == 0 {
			item.ID = r.nextID
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}

	return r
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) GetByExternalID(_ context.Context, externalID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ExternalID == externalID {
			return item, true, nil
		}
	}

	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) ListBySeason(_ context.Context, seasonID int64) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sortFixtures(out)

	return out, nil
}

func (r *FixtureRepository) ListBySeasonAndRound(_ context.Context, seasonID int64, round int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.Round != nil && *item.Round == round {
			out = append(out, item)
		}
	}
	sortFixtures(out)

	return out, nil
}

// Upsert matches the SQL ON CONFLICT (api_id) behavior: the external id keys
// the row, every synced field is refreshed, the surrogate id survives.
func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.ExternalID == item.ExternalID {
			item.ID = id
			r.items[id] = item
			return nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return nil
}

// Count reports the stored fixture rows; handy for idempotence assertions.
func (r *FixtureRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func sortFixtures(items []fixture.Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ExternalID < items[j].ExternalID
	})
}

package memory

import (
	"context"
	"sync"

	"github.com/typerliga/prediction-league/internal/domain/season"
)

// SeasonRepository resolves seasons through the league repository so the
// league-external-id lookup behaves like the SQL join it mirrors.
type SeasonRepository struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]season.Season
	leagues *LeagueRepository
}

func NewSeasonRepository(leagues *LeagueRepository, seasons []season.Season) *SeasonRepository {
	r := &SeasonRepository{
		nextID:  1,
		items:   make(map[int64]season.Season, len(seasons)),
		leagues: leagues,
	}
	for _, item := range seasons {
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

func (r *SeasonRepository) GetByLeagueExternalIDAndYear(ctx context.Context, leagueExternalID int64, startYear int) (season.Season, bool, error) {
	localLeague, exists, err := r.leagues.GetByExternalID(ctx, leagueExternalID)
	if err != nil || !exists {
		return season.Season{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.LeagueID == localLeague.ID && item.StartYear == startYear {
			return item, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) GetOrCreate(_ context.Context, item season.Season) (season.Season, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.LeagueID == item.LeagueID && existing.StartYear == item.StartYear {
			return existing, false, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, true, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID int64) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[seasonID]
	return item, ok, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/typerliga/prediction-league/internal/domain/team"
)

type seasonLink struct {
	teamID   int64
	seasonID int64
}

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]team.Team
	links  map[seasonLink]struct{}
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{
		nextID: 1,
		items:  make(map[int64]team.Team, len(teams)),
		links:  make(map[seasonLink]struct{}),
	}
	for _, item := range teams {
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

func (r *TeamRepository) GetByExternalID(_ context.Context, externalID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ExternalID == externalID {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) GetOrCreate(_ context.Context, item team.Team) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ExternalID == item.ExternalID {
			return existing, false, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, true, nil
}

func (r *TeamRepository) AddSeason(_ context.Context, teamID, seasonID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links[seasonLink{teamID: teamID, seasonID: seasonID}] = struct{}{}
	return nil
}

// SeasonCount reports how many season links a team carries; handy for
// idempotence assertions.
func (r *TeamRepository) SeasonCount(teamID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for link := range r.links {
		if link.teamID == teamID {
			count++
		}
	}
	return count
}

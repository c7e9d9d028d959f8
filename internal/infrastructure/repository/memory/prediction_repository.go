package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/prediction"
)

// PredictionRepository keeps predictions in memory. It holds the fixture
// repository so the create path can enforce the fixture-still-open rule under
// the same lock, mirroring the conditional INSERT the SQL store uses.
type PredictionRepository struct {
	mu       sync.Mutex
	nextID   int64
	items    map[int64]prediction.Prediction
	fixtures *FixtureRepository
}

func NewPredictionRepository(fixtures *FixtureRepository) *PredictionRepository {
	return &PredictionRepository{
		nextID:   1,
		items:    make(map[int64]prediction.Prediction),
		fixtures: fixtures,
	}
}

func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists, err := r.fixtures.GetByID(ctx, item.FixtureID)
	if err != nil {
		return prediction.Prediction{}, err
	}
	if !exists || !fixture.IsOpenForPredictions(target.Status) {
		return prediction.Prediction{}, prediction.ErrFixtureNotOpen
	}

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.GroupID == item.GroupID && existing.FixtureID == item.FixtureID {
			return prediction.Prediction{}, prediction.ErrDuplicate
		}
	}

	item.ID = r.nextID
	r.nextID++
	item.PointsAwarded = nil
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *PredictionRepository) UpdateScoreline(ctx context.Context, predictionID int64, userID string, predictedHome, predictedAway int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[predictionID]
	if !ok || item.UserID != userID {
		return prediction.ErrNotFound
	}

	target, exists, err := r.fixtures.GetByID(ctx, item.FixtureID)
	if err != nil {
		return err
	}
	if !exists || !fixture.IsOpenForPredictions(target.Status) {
		return prediction.ErrFixtureNotOpen
	}

	item.PredictedHome = predictedHome
	item.PredictedAway = predictedAway
	r.items[predictionID] = item

	return nil
}

func (r *PredictionRepository) GetByID(_ context.Context, predictionID int64) (prediction.Prediction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[predictionID]
	return item, ok, nil
}

func (r *PredictionRepository) ListByGroupAndUser(_ context.Context, groupID int64, userID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if item.GroupID == groupID && item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PredictionRepository) ListScorable(ctx context.Context) ([]prediction.Scorable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]prediction.Scorable, 0)
	for _, item := range r.items {
		if item.PointsAwarded != nil {
			continue
		}
		target, exists, err := r.fixtures.GetByID(ctx, item.FixtureID)
		if err != nil {
			return nil, err
		}
		if !exists || !fixture.IsFinishedStatus(target.Status) || !target.HasResult() {
			continue
		}
		out = append(out, prediction.Scorable{
			PredictionID:  item.ID,
			PredictedHome: item.PredictedHome,
			PredictedAway: item.PredictedAway,
			ActualHome:    *target.HomeScore,
			ActualAway:    *target.AwayScore,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PredictionID < out[j].PredictionID })

	return out, nil
}

func (r *PredictionRepository) BulkAwardPoints(_ context.Context, updates []prediction.PointsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, update := range updates {
		item, ok := r.items[update.PredictionID]
		if !ok || item.PointsAwarded != nil {
			continue
		}
		points := update.Points
		item.PointsAwarded = &points
		r.items[update.PredictionID] = item
	}

	return nil
}

func (r *PredictionRepository) TotalsByGroup(_ context.Context, groupID int64) ([]prediction.MemberPoints, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := make(map[string]int)
	for _, item := range r.items {
		if item.GroupID != groupID {
			continue
		}
		if _, seen := totals[item.UserID]; !seen {
			totals[item.UserID] = 0
		}
		if item.PointsAwarded != nil {
			totals[item.UserID] += *item.PointsAwarded
		}
	}

	out := make([]prediction.MemberPoints, 0, len(totals))
	for userID, total := range totals {
		out = append(out, prediction.MemberPoints{UserID: userID, TotalPoints: total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

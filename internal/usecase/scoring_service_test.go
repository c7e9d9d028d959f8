package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/prediction"
	"github.com/typerliga/prediction-league/internal/infrastructure/repository/memory"
	"github.com/typerliga/prediction-league/internal/platform/logging"
)

type scoringSetup struct {
	fixtures    *memory.FixtureRepository
	predictions *memory.PredictionRepository
	service     *ScoringService
}

func newScoringSetup(t *testing.T, fixtures []fixture.Fixture) *scoringSetup {
	t.Helper()

	fixtureRepo := memory.NewFixtureRepository(fixtures)
	predictionRepo := memory.NewPredictionRepository(fixtureRepo)

	return &scoringSetup{
		fixtures:    fixtureRepo,
		predictions: predictionRepo,
		service:     NewScoringService(predictionRepo, logging.NewNop()),
	}
}

func openFixture(id int64) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		SeasonID:   1,
		KickoffAt:  time.Date(2023, time.September, 10, 18, 0, 0, 0, time.UTC),
		HomeTeamID: 1,
		AwayTeamID: 2,
		ExternalID: 9000 + id,
		Status:     fixture.StatusNotStarted,
	}
}

func finishFixture(t *testing.T, repo *memory.FixtureRepository, id int64, home, away int) {
	t.Helper()

	item, exists, err := repo.GetByID(context.Background(), id)
	if err != nil || !exists {
		t.Fatalf("fixture %d missing: exists=%v err=%v", id, exists, err)
	}
	item.Status = fixture.StatusFinished
	item.HomeScore = &home
	item.AwayScore = &away
	if err := repo.Upsert(context.Background(), item); err != nil {
		t.Fatalf("finish fixture %d: %v", id, err)
	}
}

func mustPredict(t *testing.T, repo *memory.PredictionRepository, userID string, fixtureID int64, home, away int) prediction.Prediction {
	t.Helper()

	created, err := repo.Create(context.Background(), prediction.Prediction{
		UserID:        userID,
		GroupID:       1,
		FixtureID:     fixtureID,
		PredictedHome: home,
		PredictedAway: away,
	})
	if err != nil {
		t.Fatalf("create prediction for %s: %v", userID, err)
	}
	return created
}

func TestRunScoringBatch_AwardsPointsOnce(t *testing.T) {
	setup := newScoringSetup(t, []fixture.Fixture{openFixture(1), openFixture(2)})

	exact := mustPredict(t, setup.predictions, "alice", 1, 2, 1)
	outcome := mustPredict(t, setup.predictions, "bob", 1, 1, 0)
	miss := mustPredict(t, setup.predictions, "carol", 1, 0, 3)
	pending := mustPredict(t, setup.predictions, "alice", 2, 1, 1)

	finishFixture(t, setup.fixtures, 1, 2, 1)

	updated, err := setup.service.RunScoringBatch(context.Background())
	if err != nil {
		t.Fatalf("scoring batch: %v", err)
	}
	if updated != 3 {
		t.Fatalf("unexpected updated count: got=%d want=3", updated)
	}

	for _, tc := range []struct {
		name         string
		predictionID int64
		want         int
	}{
		{name: "exact scoreline", predictionID: exact.ID, want: 3},
		{name: "outcome only", predictionID: outcome.ID, want: 1},
		{name: "miss", predictionID: miss.ID, want: 0},
	} {
		stored, _, err := setup.predictions.GetByID(context.Background(), tc.predictionID)
		if err != nil {
			t.Fatalf("%s: get prediction: %v", tc.name, err)
		}
		if stored.PointsAwarded == nil || *stored.PointsAwarded != tc.want {
			t.Fatalf("%s: points=%v want=%d", tc.name, stored.PointsAwarded, tc.want)
		}
	}

	unfinished, _, err := setup.predictions.GetByID(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("get pending prediction: %v", err)
	}
	if unfinished.PointsAwarded != nil {
		t.Fatalf("prediction on an unfinished fixture must stay unscored")
	}
}

func TestRunScoringBatch_NeverRescores(t *testing.T) {
	setup := newScoringSetup(t, []fixture.Fixture{openFixture(1)})
	scored := mustPredict(t, setup.predictions, "alice", 1, 2, 1)
	finishFixture(t, setup.fixtures, 1, 2, 1)

	if _, err := setup.service.RunScoringBatch(context.Background()); err != nil {
		t.Fatalf("first batch: %v", err)
	}

	// A corrected result after settlement must not rewrite awarded points.
	finishFixture(t, setup.fixtures, 1, 0, 0)

	updated, err := setup.service.RunScoringBatch(context.Background())
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if updated != 0 {
		t.Fatalf("second run must settle nothing: got=%d want=0", updated)
	}

	stored, _, err := setup.predictions.GetByID(context.Background(), scored.ID)
	if err != nil {
		t.Fatalf("get prediction: %v", err)
	}
	if stored.PointsAwarded == nil || *stored.PointsAwarded != 3 {
		t.Fatalf("awarded points changed: got=%v want=3", stored.PointsAwarded)
	}
}

func TestRunScoringBatch_NoEligibleRows(t *testing.T) {
	setup := newScoringSetup(t, []fixture.Fixture{openFixture(1)})
	mustPredict(t, setup.predictions, "alice", 1, 1, 1)

	updated, err := setup.service.RunScoringBatch(context.Background())
	if err != nil {
		t.Fatalf("scoring batch: %v", err)
	}
	if updated != 0 {
		t.Fatalf("nothing finished, nothing to settle: got=%d want=0", updated)
	}
}

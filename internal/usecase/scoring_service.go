package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/typerliga/prediction-league/internal/domain/prediction"
	"github.com/typerliga/prediction-league/internal/platform/logging"
)

const defaultScoringWorkers = 8

// ScoringService settles predictions for finished fixtures. It is invoked as
// a discrete run (cron-style or via the internal job endpoint) and is
// idempotent at the row level: it only ever selects predictions with no
// points awarded, so re-running never rescores anything.
type ScoringService struct {
	predictionRepo prediction.Repository
	logger         *logging.Logger
	workers        int
}

func NewScoringService(predictionRepo prediction.Repository, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		predictionRepo: predictionRepo,
		logger:         logger,
		workers:        defaultScoringWorkers,
	}
}

// RunScoringBatch scores every prediction whose fixture finished with a
// result and whose points are still unset, then persists all of them in one
// bulk write. Returns the number of predictions updated; zero eligible rows
// is a no-op.
func (s *ScoringService) RunScoringBatch(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RunScoringBatch")
	defer span.End()

	scorables, err := s.predictionRepo.ListScorable(ctx)
	if err != nil {
		return 0, fmt.Errorf("list scorable predictions: %w", err)
	}
	if len(scorables) == 0 {
		return 0, nil
	}

	updates := make([]prediction.PointsUpdate, len(scorables))
	workers := pool.New().WithMaxGoroutines(s.workers)
	for idx, item := range scorables {
		idx, item := idx, item
		workers.Go(func() {
			updates[idx] = prediction.PointsUpdate{
				PredictionID: item.PredictionID,
				Points:       prediction.Points(item.PredictedHome, item.PredictedAway, item.ActualHome, item.ActualAway),
			}
		})
	}
	workers.Wait()

	// One bulk write so the run is all-or-nothing and store round-trips stay
	// bounded.
	if err := s.predictionRepo.BulkAwardPoints(ctx, updates); err != nil {
		return 0, fmt.Errorf("bulk award points: %w", err)
	}

	s.logger.InfoContext(ctx, "scoring batch complete", "updated", len(updates))
	return len(updates), nil
}

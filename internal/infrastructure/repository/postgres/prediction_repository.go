package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/prediction"
)

const predictionColumns = `id, user_id, group_id, fixture_id, predicted_home, predicted_away, points_awarded, created_at`

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create inserts through a SELECT on the fixture row so the open-status check
// and the write happen in one statement. Zero rows back means the fixture has
// left the not-started state; the unique constraint reports duplicates.
func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	const insert = `
		INSERT INTO predictions (user_id, group_id, fixture_id, predicted_home, predicted_away)
		SELECT $1, $2, f.id, $4, $5
		FROM fixtures f
		WHERE f.id = $3 AND f.status = $6
		RETURNING ` + predictionColumns

	var row predictionTableModel
	err := r.db.GetContext(ctx, &row, insert,
		item.UserID,
		item.GroupID,
		item.FixtureID,
		item.PredictedHome,
		item.PredictedAway,
		fixture.StatusNotStarted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return prediction.Prediction{}, prediction.ErrDuplicate
		}
		if isNotFound(err) {
			return prediction.Prediction{}, prediction.ErrFixtureNotOpen
		}
		return prediction.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}

	return mapPredictionRow(row), nil
}

func (r *PredictionRepository) UpdateScoreline(ctx context.Context, predictionID int64, userID string, predictedHome, predictedAway int) error {
	const update = `
		UPDATE predictions p
		SET predicted_home = $3, predicted_away = $4
		FROM fixtures f
		WHERE p.id = $1 AND p.user_id = $2 AND f.id = p.fixture_id AND f.status = $5`

	result, err := r.db.ExecContext(ctx, update, predictionID, userID, predictedHome, predictedAway, fixture.StatusNotStarted)
	if err != nil {
		return fmt.Errorf("update prediction scoreline: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update prediction scoreline: rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Zero rows is either an unknown prediction or a closed fixture. Probe
	// ownership to tell them apart.
	const probe = `SELECT EXISTS (SELECT 1 FROM predictions WHERE id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, probe, predictionID, userID); err != nil {
		return fmt.Errorf("probe prediction ownership: %w", err)
	}
	if !exists {
		return prediction.ErrNotFound
	}

	return prediction.ErrFixtureNotOpen
}

func (r *PredictionRepository) GetByID(ctx context.Context, predictionID int64) (prediction.Prediction, bool, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, predictionID); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("select prediction by id: %w", err)
	}

	return mapPredictionRow(row), true, nil
}

func (r *PredictionRepository) ListByGroupAndUser(ctx context.Context, groupID int64, userID string) ([]prediction.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE group_id = $1 AND user_id = $2 ORDER BY id`

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, groupID, userID); err != nil {
		return nil, fmt.Errorf("select predictions by group and user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPredictionRow(row))
	}

	return out, nil
}

func (r *PredictionRepository) ListScorable(ctx context.Context) ([]prediction.Scorable, error) {
	const query = `
		SELECT p.id AS prediction_id, p.predicted_home, p.predicted_away,
		       f.home_score AS actual_home, f.away_score AS actual_away
		FROM predictions p
		JOIN fixtures f ON f.id = p.fixture_id
		WHERE p.points_awarded IS NULL
		  AND f.status = $1
		  AND f.home_score IS NOT NULL
		  AND f.away_score IS NOT NULL
		ORDER BY p.id`

	type scorableRow struct {
		PredictionID  int64 `db:"prediction_id"`
		PredictedHome int   `db:"predicted_home"`
		PredictedAway int   `db:"predicted_away"`
		ActualHome    int   `db:"actual_home"`
		ActualAway    int   `db:"actual_away"`
	}

	var rows []scorableRow
	if err := r.db.SelectContext(ctx, &rows, query, fixture.StatusFinished); err != nil {
		return nil, fmt.Errorf("select scorable predictions: %w", err)
	}

	out := make([]prediction.Scorable, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Scorable{
			PredictionID:  row.PredictionID,
			PredictedHome: row.PredictedHome,
			PredictedAway: row.PredictedAway,
			ActualHome:    row.ActualHome,
			ActualAway:    row.ActualAway,
		})
	}

	return out, nil
}

// BulkAwardPoints writes every settled row in a single UPDATE by unnesting the
// paired id/points arrays. Rows already scored are left alone.
func (r *PredictionRepository) BulkAwardPoints(ctx context.Context, updates []prediction.PointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(updates))
	points := make([]int64, 0, len(updates))
	for _, update := range updates {
		ids = append(ids, update.PredictionID)
		points = append(points, int64(update.Points))
	}

	const update = `
		UPDATE predictions p
		SET points_awarded = settled.points
		FROM (SELECT unnest($1::bigint[]) AS id, unnest($2::bigint[]) AS points) settled
		WHERE p.id = settled.id AND p.points_awarded IS NULL`

	if _, err := r.db.ExecContext(ctx, update, pq.Array(ids), pq.Array(points)); err != nil {
		return fmt.Errorf("bulk award points: %w", err)
	}

	return nil
}

func (r *PredictionRepository) TotalsByGroup(ctx context.Context, groupID int64) ([]prediction.MemberPoints, error) {
	const query = `
		SELECT user_id, COALESCE(SUM(points_awarded), 0) AS total_points
		FROM predictions
		WHERE group_id = $1
		GROUP BY user_id`

	type totalRow struct {
		UserID      string `db:"user_id"`
		TotalPoints int    `db:"total_points"`
	}

	var rows []totalRow
	if err := r.db.SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, fmt.Errorf("select group point totals: %w", err)
	}

	out := make([]prediction.MemberPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.MemberPoints{
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
		})
	}

	return out, nil
}

func mapPredictionRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:            row.ID,
		UserID:        row.UserID,
		GroupID:       row.GroupID,
		FixtureID:     row.FixtureID,
		PredictedHome: row.PredictedHome,
		PredictedAway: row.PredictedAway,
		PointsAwarded: nullIntToPtr(row.PointsAwarded),
		CreatedAt:     row.CreatedAt,
	}
}

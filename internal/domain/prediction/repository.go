package prediction

import "context"

// Scorable pairs an unscored prediction with its fixture's final result.
type Scorable struct {
	PredictionID  int64
	PredictedHome int
	PredictedAway int
	ActualHome    int
	ActualAway    int
}

// PointsUpdate is one settled row for the bulk write.
type PointsUpdate struct {
	PredictionID int64
	Points       int
}

// MemberPoints is a member's accumulated total within one group. Unscored
// predictions contribute zero.
type MemberPoints struct {
	UserID      string
	TotalPoints int
}

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	// Create inserts the prediction only while its fixture is still open for
	// predictions; the status check and the uniqueness constraint are
	// enforced atomically with the write.
	Create(ctx context.Context, item Prediction) (Prediction, error)
	// UpdateScoreline changes the guess, again only while the fixture is
	// open.
	UpdateScoreline(ctx context.Context, predictionID int64, userID string, predictedHome, predictedAway int) error
	GetByID(ctx context.Context, predictionID int64) (Prediction, bool, error)
	ListByGroupAndUser(ctx context.Context, groupID int64, userID string) ([]Prediction, error)
	// ListScorable selects every prediction with no points awarded whose
	// fixture finished with a result.
	ListScorable(ctx context.Context) ([]Scorable, error)
	// BulkAwardPoints persists all settled rows in one write. Rows already
	// carrying points are never touched.
	BulkAwardPoints(ctx context.Context, updates []PointsUpdate) error
	// TotalsByGroup sums awarded points per group member.
	TotalsByGroup(ctx context.Context, groupID int64) ([]MemberPoints, error)
}

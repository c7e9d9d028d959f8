package prediction

import "time"

// Prediction is one user's scoreline guess for a fixture inside a group.
// (UserID, GroupID, FixtureID) is unique. PointsAwarded stays nil until the
// scoring batch settles the fixture.
type Prediction struct {
	ID            int64
	UserID        string
	GroupID       int64
	FixtureID     int64
	PredictedHome int
	PredictedAway int
	PointsAwarded *int
	CreatedAt     time.Time
}

func (p Prediction) IsScored() bool {
	return p.PointsAwarded != nil
}

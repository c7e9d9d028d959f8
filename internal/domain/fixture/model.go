package fixture

import (
	"strings"
	"time"
)

// Status codes follow the provider's short form.
const (
	StatusNotStarted = "NS"
	StatusFirstHalf  = "1H"
	StatusHalfTime   = "HT"
	StatusSecondHalf = "2H"
	StatusLive       = "LIVE"
	StatusFinished   = "FT"
	StatusPostponed  = "PST"
	StatusCancelled  = "CANC"
)

// Fixture is one scheduled or completed match between two teams within a
// season. ExternalID is the reconciliation key; the row is refreshed on every
// sync and never deleted.
type Fixture struct {
	ID         int64
	SeasonID   int64
	KickoffAt  time.Time
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  *int
	AwayScore  *int
	ExternalID int64
	Status     string
	Round      *int
	RoundName  string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsKnownStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusNotStarted, StatusFirstHalf, StatusHalfTime, StatusSecondHalf,
		StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// IsOpenForPredictions reports whether predictions may still be created or
// changed for a fixture in this status.
func IsOpenForPredictions(status string) bool {
	return NormalizeStatus(status) == StatusNotStarted
}

// HasResult reports whether both scores are present. Scores are both-null or
// both-set; a finished fixture must have a result before it can be scored.
func (f Fixture) HasResult() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

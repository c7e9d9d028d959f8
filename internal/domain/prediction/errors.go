package prediction

import "errors"

var (
	// ErrNotFound reports a prediction that does not exist or belongs to a
	// different user.
	ErrNotFound = errors.New("prediction not found")
	// ErrDuplicate reports a second prediction for the same
	// (user, group, fixture) triple.
	ErrDuplicate = errors.New("prediction already exists for this fixture")
	// ErrFixtureNotOpen reports a write against a fixture that already
	// started, finished, or was called off.
	ErrFixtureNotOpen = errors.New("fixture is not open for predictions")
)

package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrProvider reports a non-success result or malformed payload from the
	// external fixture provider. The sync call that hit it aborts; nothing
	// already stored is rolled back.
	ErrProvider = errors.New("provider request failed")
	// ErrUnknownSeason reports that no local season matches the requested
	// league external id and start year.
	ErrUnknownSeason = errors.New("unknown season")

	// ErrInvalidAccessCode reports that no group matches the supplied code.
	ErrInvalidAccessCode = errors.New("invalid access code")
	// ErrNotAMember reports that the requesting user does not belong to the
	// group.
	ErrNotAMember = errors.New("not a group member")
)

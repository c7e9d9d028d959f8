package usergroup

import (
	"fmt"
	"time"
)

// Group is a named prediction pool. Members join with the shared access code;
// an optional season binding and round range restrict which fixtures the
// group predicts.
type Group struct {
	ID          int64
	Name        string
	AccessCode  string
	Description string
	SeasonID    *int64
	AdminUserID *string
	StartRound  *int
	EndRound    *int
	CreatedAt   time.Time
}

type Member struct {
	GroupID  int64
	UserID   string
	JoinedAt time.Time
}

func (g Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if g.AccessCode == "" {
		return fmt.Errorf("group access code is required")
	}
	if g.StartRound != nil && g.EndRound != nil && *g.StartRound > *g.EndRound {
		return fmt.Errorf("group start round must not be after end round")
	}

	return nil
}

// AllowsRound reports whether a fixture round falls inside the group's round
// range. A nil round is only allowed when the group has no range at all.
func (g Group) AllowsRound(round *int) bool {
	if g.StartRound == nil && g.EndRound == nil {
		return true
	}
	if round == nil {
		return false
	}
	if g.StartRound != nil && *round < *g.StartRound {
		return false
	}
	if g.EndRound != nil && *round > *g.EndRound {
		return false
	}
	return true
}

package team

import "fmt"

// Team is a football club known from the provider. A team participates in
// zero or more seasons, possibly across different leagues.
type Team struct {
	ID         int64
	Name       string
	ExternalID int64
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ExternalID <= 0 {
		return fmt.Errorf("team external id must be greater than zero")
	}

	return nil
}

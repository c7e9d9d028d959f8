package league

import "fmt"

// League is a football competition tracked by the prediction platform.
// ExternalID is the provider's identifier and the only stable key used to
// match provider records across repeated syncs.
type League struct {
	ID         int64
	Name       string
	Country    string
	Level      int
	ExternalID int64
}

func (l League) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Country == "" {
		return fmt.Errorf("league country is required")
	}
	if l.ExternalID <= 0 {
		return fmt.Errorf("league external id must be greater than zero")
	}

	return nil
}

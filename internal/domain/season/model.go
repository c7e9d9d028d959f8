package season

import "fmt"

// Season is one year of a league, e.g. "2023-2024". A league has at most one
// season per starting year.
type Season struct {
	ID        int64
	LeagueID  int64
	Year      string
	StartYear int
}

// YearLabel builds the canonical "YYYY-YYYY" label for a starting year.
func YearLabel(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

func (s Season) Validate() error {
	if s.LeagueID <= 0 {
		return fmt.Errorf("season league id is required")
	}
	if s.StartYear <= 0 {
		return fmt.Errorf("season start year is required")
	}
	if s.Year != YearLabel(s.StartYear) {
		return fmt.Errorf("season year must be %q, got %q", YearLabel(s.StartYear), s.Year)
	}

	return nil
}

package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		predHome int
		predAway int
		home     int
		away     int
		want     int
	}{
		{name: "exact home win", predHome: 2, predAway: 1, home: 2, away: 1, want: PointsExact},
		{name: "exact draw", predHome: 0, predAway: 0, home: 0, away: 0, want: PointsExact},
		{name: "exact away win", predHome: 0, predAway: 3, home: 0, away: 3, want: PointsExact},
		{name: "home win both, wrong score", predHome: 2, predAway: 1, home: 3, away: 1, want: PointsOutcome},
		{name: "away win both, wrong score", predHome: 0, predAway: 1, home: 1, away: 4, want: PointsOutcome},
		{name: "draw both, wrong score", predHome: 1, predAway: 1, home: 2, away: 2, want: PointsOutcome},
		{name: "opposite outcome", predHome: 2, predAway: 1, home: 1, away: 2, want: PointsMiss},
		{name: "predicted draw, actual home win", predHome: 1, predAway: 1, home: 2, away: 0, want: PointsMiss},
		{name: "predicted home win, actual draw", predHome: 2, predAway: 0, home: 1, away: 1, want: PointsMiss},
		{name: "predicted away win, actual draw", predHome: 0, predAway: 2, home: 3, away: 3, want: PointsMiss},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Points(tc.predHome, tc.predAway, tc.home, tc.away)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPoints_DrawDrawNotCoveredByProduct(t *testing.T) {
	t.Parallel()

	// Both goal differences are zero, so the product test alone would miss
	// this case.
	assert.Equal(t, PointsOutcome, Points(1, 1, 2, 2))
	// One zero difference must not count as an outcome match.
	assert.Equal(t, PointsMiss, Points(2, 2, 1, 0))
}

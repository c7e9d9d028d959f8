package prediction

// Points awarded per scoring outcome.
const (
	PointsExact   = 3
	PointsOutcome = 1
	PointsMiss    = 0
)

// Points scores a prediction against the final result. Exact scoreline earns
// PointsExact; the right outcome (win/loss direction or a draw both ways)
// with a wrong scoreline earns PointsOutcome; anything else earns PointsMiss.
//
// The direction test multiplies the two goal differences: a positive product
// means both predicted and actual went the same way. A zero product cannot
// tell "both drew" apart from "only one side drew", so the draw-draw case is
// checked explicitly. Predicting a draw for a decisive match (or the
// reverse) earns nothing.
//
// Callers must only invoke this with a resolved result; there is no partial
// scoring for unfinished fixtures.
func Points(predictedHome, predictedAway, actualHome, actualAway int) int {
	if predictedHome == actualHome && predictedAway == actualAway {
		return PointsExact
	}
	if (predictedHome-predictedAway)*(actualHome-actualAway) > 0 ||
		(predictedHome == predictedAway && actualHome == actualAway) {
		return PointsOutcome
	}
	return PointsMiss
}

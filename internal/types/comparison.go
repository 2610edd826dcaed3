package types

// ComparisonBasis defines which figure a two-card comparison ranks on.
type ComparisonBasis string

const (
	// COMPARISON_BASIS_UNITS ranks on raw earned reward units. Valid only
	// when both cards earned in the same unit for the same spend.
	COMPARISON_BASIS_UNITS ComparisonBasis = "UNITS"

	// COMPARISON_BASIS_VALUE ranks on redemption currency value. Used for
	// redemption intents where a point is not a comparable unit across
	// cards.
	COMPARISON_BASIS_VALUE ComparisonBasis = "VALUE"
)

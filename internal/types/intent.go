package types

import (
	ierr "github.com/cardsage/cardsage/internal/errors"
)

// Intent is the classified intent of a user query
type Intent string

const (
	// INTENT_REWARD_CALCULATION asks how many points/miles a spend earns
	INTENT_REWARD_CALCULATION Intent = "reward_calculation"

	// INTENT_REDEMPTION_QUERY asks what earned points are worth
	INTENT_REDEMPTION_QUERY Intent = "redemption_query"

	// INTENT_FEATURE_COMPARISON asks which of two cards does better
	INTENT_FEATURE_COMPARISON Intent = "feature_comparison"

	// INTENT_GENERAL_QUERY is the fallback when no pattern group matches
	INTENT_GENERAL_QUERY Intent = "general_query"
)

func (i Intent) String() string {
	return string(i)
}

func (i Intent) Validate() error {
	switch i {
	case INTENT_REWARD_CALCULATION, INTENT_REDEMPTION_QUERY,
		INTENT_FEATURE_COMPARISON, INTENT_GENERAL_QUERY:
		return nil
	default:
		return ierr.NewError("invalid intent").
			WithHint("Intent must be one of the supported query intents").
			WithReportableDetails(map[string]any{
				"intent": i,
			}).
			Mark(ierr.ErrValidation)
	}
}

// RequiresComputation reports whether the intent needs the calculation
// pipeline or is handed straight to the phrasing collaborator.
func (i Intent) RequiresComputation() bool {
	return i != INTENT_GENERAL_QUERY
}

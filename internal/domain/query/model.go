package query

import (
	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/types"
)

// ExtractedEntities is the transient, per-query value object produced by the
// entity extractor. Nil/empty fields mean the turn did not mention them.
type ExtractedEntities struct {
	// Amount is the spend amount in currency units, currency-normalized.
	Amount *decimal.Decimal `json:"amount,omitempty"`

	// Category is the resolved spend category, empty when unset.
	Category types.SpendCategory `json:"category,omitempty"`

	// Points is the point quantity for redemption queries.
	Points *decimal.Decimal `json:"points,omitempty"`

	// Channel is the redemption channel, empty when unspecified.
	Channel types.RedemptionChannel `json:"channel,omitempty"`

	// CardIDs are the zero, one or two cards the query references.
	CardIDs []string `json:"card_ids,omitempty"`
}

// MergePrior backfills entities the current turn omitted from the
// immediately preceding turn. This is single-turn memory only; the caller
// owns the prior value and its scope.
func (e ExtractedEntities) MergePrior(prior *ExtractedEntities) ExtractedEntities {
	if prior == nil {
		return e
	}
	merged := e
	if merged.Amount == nil {
		merged.Amount = prior.Amount
	}
	if merged.Category == "" {
		merged.Category = prior.Category
	}
	if merged.Points == nil {
		merged.Points = prior.Points
	}
	if merged.Channel == "" {
		merged.Channel = prior.Channel
	}
	if len(merged.CardIDs) == 0 {
		merged.CardIDs = prior.CardIDs
	}
	return merged
}

// TierUsage records how much of the spend landed in one tier and what it
// earned there, kept for transparency in the final result.
type TierUsage struct {
	Floor   decimal.Decimal  `json:"floor"`
	Ceiling *decimal.Decimal `json:"ceiling,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
	Amount  decimal.Decimal  `json:"amount"`
	Units   decimal.Decimal  `json:"units"`
}

// CardComputation is the per-card outcome of the reward or redemption
// calculation. Exact decimals are kept throughout; WholeUnits is the only
// place rounding (floor) happens.
type CardComputation struct {
	CardID     string `json:"card_id"`
	CardName   string `json:"card_name"`
	RewardUnit string `json:"reward_unit"`

	// EarnedUnits is the exact decimal reward before output rounding.
	EarnedUnits decimal.Decimal `json:"earned_units"`

	// WholeUnits is EarnedUnits rounded down to a whole unit, the figure
	// handed to the phrasing collaborator.
	WholeUnits decimal.Decimal `json:"whole_units"`

	AppliedCap       bool             `json:"applied_cap"`
	AppliedExclusion bool             `json:"applied_exclusion"`
	CapLimit         *decimal.Decimal `json:"cap_limit,omitempty"`

	// Tiers is the per-tier breakdown of the spend walk.
	Tiers []TierUsage `json:"tiers,omitempty"`

	// RedemptionValues maps channel to currency value for redemption
	// queries; for a named channel it holds that single entry.
	RedemptionValues map[types.RedemptionChannel]decimal.Decimal `json:"redemption_values,omitempty"`
}

// Finalize sets WholeUnits from EarnedUnits. Called exactly once when the
// computation is assembled into a result.
func (c *CardComputation) Finalize() {
	c.WholeUnits = c.EarnedUnits.Floor()
}

// BestRedemptionValue returns the highest channel value, used when the
// comparison basis is currency value. The second return is false when the
// computation carries no redemption values.
func (c *CardComputation) BestRedemptionValue() (decimal.Decimal, bool) {
	best := decimal.Zero
	found := false
	for _, value := range c.RedemptionValues {
		if !found || value.GreaterThan(best) {
			best = value
			found = true
		}
	}
	return best, found
}

// Comparison is the outcome of a two-card comparison. WinnerCardID is empty
// on a tie.
type Comparison struct {
	WinnerCardID string                `json:"winner_card_id,omitempty"`
	Margin       decimal.Decimal       `json:"margin"`
	Basis        types.ComparisonBasis `json:"basis"`
}

// Clarification is the structured "clarification needed" outcome emitted
// when a recoverable condition prevents computation. It names the missing
// or invalid entity so the phrasing collaborator can ask for it.
type Clarification struct {
	Code    string `json:"code"`
	Missing string `json:"missing"`
	Message string `json:"message"`
}

// Result is the sole handoff artifact to the phrasing collaborator. It is
// never mutated after construction.
type Result struct {
	QueryID  string            `json:"query_id"`
	Intent   types.Intent      `json:"intent"`
	RawQuery string            `json:"raw_query"`
	Entities ExtractedEntities `json:"entities"`

	Cards         []*CardComputation `json:"cards,omitempty"`
	Comparison    *Comparison        `json:"comparison,omitempty"`
	Clarification *Clarification     `json:"clarification,omitempty"`
}

// NeedsClarification reports whether the result is a clarification prompt
// rather than a computation.
func (r *Result) NeedsClarification() bool {
	return r.Clarification != nil
}

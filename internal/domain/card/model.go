package card

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/types"
)

// Card is an immutable reward-program definition. It is created once at
// repository build time, validated there, and shared read-only across all
// concurrent queries afterwards.
type Card struct {
	// ID uniquely identifies the card, ex axis-atlas
	ID string `json:"id" validate:"required"`

	// Name is the display name, ex Axis Bank Atlas Credit Card
	Name string `json:"name" validate:"required"`

	// Aliases are the legal name, short name and product nicknames used to
	// recognize the card in free text. Matching is case-insensitive substring.
	Aliases []string `json:"aliases" validate:"required,min=1"`

	// RewardUnit names what the card earns, ex miles, points
	RewardUnit string `json:"reward_unit" validate:"required"`

	// GeneralRate is the earning rate in reward units per currency unit,
	// applied when a category has no tier list of its own.
	// Ex 0.02 means 2 miles per ₹100.
	GeneralRate decimal.Decimal `json:"rate_general"`

	// GeneralTiers optionally replaces GeneralRate with a tiered schedule.
	GeneralTiers []RateTier `json:"rate_tiers,omitempty"`

	// CategoryTiers holds category-specific tier schedules.
	CategoryTiers map[types.SpendCategory][]RateTier `json:"category_tiers,omitempty"`

	// Exclusions are categories that earn zero reward regardless of rate.
	// Matching is exact-category, never fuzzy.
	Exclusions []types.SpendCategory `json:"accrual_exclusions,omitempty"`

	// CategoryCaps limits reward units earnable per category per statement
	// cycle, applied after tier computation.
	CategoryCaps map[types.SpendCategory]decimal.Decimal `json:"category_caps,omitempty"`

	// RedemptionRates maps redemption channel to currency value per point.
	RedemptionRates map[types.RedemptionChannel]decimal.Decimal `json:"value_per_point"`

	// Sections carries every card-record field the calculation does not
	// consume (fees, welcome benefits, lounge access, ...) untouched, for
	// the phrasing collaborator.
	Sections map[string]json.RawMessage `json:"sections,omitempty"`
}

// RateTier is a contiguous spend range [Floor, Ceiling) earning at Rate.
// A nil Ceiling means the tier is unbounded, which is how a card declares
// "rate continues after the threshold"; a bounded final tier declares
// "earning stops past the ceiling".
type RateTier struct {
	Floor   decimal.Decimal  `json:"floor"`
	Ceiling *decimal.Decimal `json:"ceiling,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
}

// Width returns the spend width covered by the tier and false when the
// tier is unbounded.
func (t RateTier) Width() (decimal.Decimal, bool) {
	if t.Ceiling == nil {
		return decimal.Zero, false
	}
	return t.Ceiling.Sub(t.Floor), true
}

// IsExcluded reports whether the category earns zero on this card.
func (c *Card) IsExcluded(category types.SpendCategory) bool {
	for _, excluded := range c.Exclusions {
		if excluded == category {
			return true
		}
	}
	return false
}

// TiersFor resolves the applicable tier schedule for a category: the
// category-specific schedule when defined, else the general schedule, else
// the flat general rate as a single unbounded tier. The second return is
// false when the card has no applicable schedule at all.
func (c *Card) TiersFor(category types.SpendCategory) ([]RateTier, bool) {
	if !category.IsGeneral() {
		if tiers, ok := c.CategoryTiers[category]; ok && len(tiers) > 0 {
			return tiers, true
		}
	}
	if len(c.GeneralTiers) > 0 {
		return c.GeneralTiers, true
	}
	if c.GeneralRate.IsPositive() {
		return []RateTier{{Floor: decimal.Zero, Rate: c.GeneralRate}}, true
	}
	return nil, false
}

// CapFor returns the per-cycle reward cap for the category, if any.
func (c *Card) CapFor(category types.SpendCategory) (decimal.Decimal, bool) {
	cap, ok := c.CategoryCaps[category]
	return cap, ok
}

// MatchesAlias reports whether the lowercased query text references this
// card through any of its aliases.
func (c *Card) MatchesAlias(text string) bool {
	for _, alias := range c.Aliases {
		if alias != "" && strings.Contains(text, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// Validate enforces the data-integrity invariants at repository build time.
// Violations are configuration defects, rejected before any query runs.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ierr.NewError("card id is required").
			WithHint("Card definitions must carry a unique identifier").
			Mark(ierr.ErrValidation)
	}
	if c.Name == "" {
		return ierr.NewError("card name is required").
			WithHint("Card definitions must carry a display name").
			WithReportableDetails(map[string]any{"card_id": c.ID}).
			Mark(ierr.ErrValidation)
	}
	if c.GeneralRate.IsNegative() {
		return c.validationError("general rate must not be negative", "")
	}

	if err := validateTiers(c.GeneralTiers); err != nil {
		return c.validationError(err.Error(), "general")
	}
	for category, tiers := range c.CategoryTiers {
		if err := validateTiers(tiers); err != nil {
			return c.validationError(err.Error(), category.String())
		}
	}

	for category, cap := range c.CategoryCaps {
		if cap.IsNegative() {
			return c.validationError("category cap must not be negative", category.String())
		}
	}
	for channel, rate := range c.RedemptionRates {
		if channel == "" {
			return c.validationError("redemption channel name must not be empty", "")
		}
		if rate.IsNegative() {
			return c.validationError("redemption rate must not be negative", channel.String())
		}
	}
	return nil
}

func (c *Card) validationError(msg string, scope string) error {
	details := map[string]any{"card_id": c.ID}
	if scope != "" {
		details["scope"] = scope
	}
	return ierr.NewError(msg).
		WithHint("Card definition is invalid").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}

// validateTiers checks that a tier schedule is ordered by floor ascending,
// contiguous and non-overlapping, with at most one unbounded final tier.
func validateTiers(tiers []RateTier) error {
	for i, tier := range tiers {
		if tier.Rate.IsNegative() {
			return ierr.NewError("tier rate must not be negative").Error()
		}
		if tier.Floor.IsNegative() {
			return ierr.NewError("tier floor must not be negative").Error()
		}
		if i == 0 {
			if !tier.Floor.IsZero() {
				return ierr.NewError("first tier must start at zero").Error()
			}
		} else {
			prev := tiers[i-1]
			if prev.Ceiling == nil {
				return ierr.NewError("unbounded tier must be the last tier").Error()
			}
			if !tier.Floor.Equal(*prev.Ceiling) {
				return ierr.NewError("tiers must be contiguous and non-overlapping").Error()
			}
		}
		if tier.Ceiling != nil && tier.Ceiling.LessThanOrEqual(tier.Floor) {
			return ierr.NewError("tier ceiling must be greater than its floor").Error()
		}
	}
	return nil
}

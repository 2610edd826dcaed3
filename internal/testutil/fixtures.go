package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/types"
)

func ceiling(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// AtlasCard returns a travel card with a tiered travel schedule, a flat
// general rate and a broad exclusion list.
func AtlasCard() *card.Card {
	return &card.Card{
		ID:          "axis-atlas",
		Name:        "Axis Bank Atlas Credit Card",
		Aliases:     []string{"atlas", "axis atlas", "axis bank atlas"},
		RewardUnit:  "miles",
		GeneralRate: decimal.NewFromFloat(0.02),
		CategoryTiers: map[types.SpendCategory][]card.RateTier{
			types.CATEGORY_TRAVEL: {
				{Floor: decimal.Zero, Ceiling: ceiling(200000), Rate: decimal.NewFromFloat(0.05)},
				{Floor: decimal.NewFromInt(200000), Rate: decimal.NewFromFloat(0.02)},
			},
		},
		Exclusions: []types.SpendCategory{
			types.CATEGORY_RENT,
			types.CATEGORY_FUEL,
			types.CATEGORY_GOVERNMENT,
			types.CATEGORY_UTILITY,
			types.CATEGORY_INSURANCE,
		},
		RedemptionRates: map[types.RedemptionChannel]decimal.Decimal{
			"partner_transfer": decimal.NewFromInt(2),
			"vouchers":         decimal.NewFromInt(1),
		},
	}
}

// EmeraldeCard returns a flat-rate card with per-category reward caps.
func EmeraldeCard() *card.Card {
	return &card.Card{
		ID:          "icici-epm",
		Name:        "ICICI Emeralde Private Metal Credit Card",
		Aliases:     []string{"emeralde", "icici emeralde", "epm", "emeralde private metal"},
		RewardUnit:  "points",
		GeneralRate: decimal.NewFromFloat(0.03),
		Exclusions: []types.SpendCategory{
			types.CATEGORY_RENT,
			types.CATEGORY_FUEL,
			types.CATEGORY_GOVERNMENT,
		},
		CategoryCaps: map[types.SpendCategory]decimal.Decimal{
			types.CATEGORY_UTILITY:   decimal.NewFromInt(1000),
			types.CATEGORY_GROCERY:   decimal.NewFromInt(1000),
			types.CATEGORY_EDUCATION: decimal.NewFromInt(1000),
			types.CATEGORY_INSURANCE: decimal.NewFromInt(5000),
		},
		RedemptionRates: map[types.RedemptionChannel]decimal.Decimal{
			"vouchers":         decimal.NewFromInt(1),
			"statement_credit": decimal.NewFromFloat(0.4),
			"catalogue":        decimal.NewFromFloat(0.25),
		},
	}
}

// Cards returns both fixture cards in stable order.
func Cards() []*card.Card {
	return []*card.Card{AtlasCard(), EmeraldeCard()}
}

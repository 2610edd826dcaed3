package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/domain/query"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

type RewardService interface {
	// Compute calculates the reward units a spend earns on one card,
	// applying exclusions, tiered rates and per-cycle caps.
	Compute(ctx context.Context, c *card.Card, category types.SpendCategory, amount decimal.Decimal) (*query.CardComputation, error)
}

type rewardService struct {
	log *logger.Logger
}

func NewRewardService(log *logger.Logger) RewardService {
	return &rewardService{log: log}
}

func (s *rewardService) Compute(ctx context.Context, c *card.Card, category types.SpendCategory, amount decimal.Decimal) (*query.CardComputation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("spend amount must be positive").
			WithHint("Please provide a positive spend amount").
			WithReportableDetails(map[string]any{
				"amount": amount.String(),
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	result := &query.CardComputation{
		CardID:     c.ID,
		CardName:   c.Name,
		RewardUnit: c.RewardUnit,
	}

	// Exclusions short-circuit everything else: the category earns zero
	// regardless of the amount.
	if c.IsExcluded(category) {
		result.AppliedExclusion = true
		result.EarnedUnits = decimal.Zero
		return result, nil
	}

	tiers, ok := c.TiersFor(category)
	if !ok {
		return nil, ierr.NewError("no rate defined for category").
			WithHint("The card has no applicable rate for this spend category").
			WithReportableDetails(map[string]any{
				"card_id":  c.ID,
				"category": category.String(),
			}).
			Mark(ierr.ErrUnresolvedCategory)
	}

	result.EarnedUnits, result.Tiers = walkTiers(tiers, amount)

	// Caps apply after the tier walk, independent of tiering.
	if capLimit, hasCap := c.CapFor(category); hasCap && result.EarnedUnits.GreaterThan(capLimit) {
		s.log.WithContext(ctx).Debugf(
			"cap clamp on card %s category %s: %s -> %s",
			c.ID, category, result.EarnedUnits.String(), capLimit.String(),
		)
		result.EarnedUnits = capLimit
		result.AppliedCap = true
		result.CapLimit = &capLimit
	}

	return result, nil
}

// walkTiers accumulates earned units across the slab schedule in ascending
// floor order. Spend beyond a bounded final tier earns nothing further;
// an unbounded final tier keeps earning at its rate.
func walkTiers(tiers []card.RateTier, amount decimal.Decimal) (decimal.Decimal, []query.TierUsage) {
	sorted := make([]card.RateTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Floor.LessThan(sorted[j].Floor)
	})

	earned := decimal.Zero
	usages := make([]query.TierUsage, 0, len(sorted))

	remaining := amount
	for _, tier := range sorted {
		tierAmount := remaining
		if width, bounded := tier.Width(); bounded && remaining.GreaterThan(width) {
			tierAmount = width
		}

		tierUnits := tierAmount.Mul(tier.Rate)
		earned = earned.Add(tierUnits)
		usages = append(usages, query.TierUsage{
			Floor:   tier.Floor,
			Ceiling: tier.Ceiling,
			Rate:    tier.Rate,
			Amount:  tierAmount,
			Units:   tierUnits,
		})

		remaining = remaining.Sub(tierAmount)
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	return earned, usages
}

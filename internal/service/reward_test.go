package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cardsage/cardsage/internal/domain/card"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/testutil"
	"github.com/cardsage/cardsage/internal/types"
)

type RewardServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service RewardService
}

func TestRewardService(t *testing.T) {
	suite.Run(t, new(RewardServiceSuite))
}

func (s *RewardServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.service = NewRewardService(logger.GetLogger())
}

func (s *RewardServiceSuite) TestTieredTravelSpend() {
	// 200000 at 0.05 plus 100000 at 0.02.
	result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_TRAVEL, decimal.NewFromInt(300000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(12000)), "got %s", result.EarnedUnits)
	s.False(result.AppliedCap)
	s.False(result.AppliedExclusion)

	s.Require().Len(result.Tiers, 2)
	s.True(result.Tiers[0].Amount.Equal(decimal.NewFromInt(200000)))
	s.True(result.Tiers[0].Units.Equal(decimal.NewFromInt(10000)))
	s.True(result.Tiers[1].Amount.Equal(decimal.NewFromInt(100000)))
	s.True(result.Tiers[1].Units.Equal(decimal.NewFromInt(2000)))
}

func (s *RewardServiceSuite) TestSpendWithinFirstTier() {
	result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_TRAVEL, decimal.NewFromInt(150000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(7500)))
	s.Require().Len(result.Tiers, 1)
}

func (s *RewardServiceSuite) TestSpendExactlyAtTierBoundary() {
	result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_TRAVEL, decimal.NewFromInt(200000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(10000)))
	s.Require().Len(result.Tiers, 1)
}

func (s *RewardServiceSuite) TestTierMonotonicity() {
	// Earned units never decrease as the spend grows.
	c := testutil.AtlasCard()
	prev := decimal.Zero
	for _, amount := range []int64{1, 100, 50000, 199999, 200000, 200001, 500000, 1000000} {
		result, err := s.service.Compute(s.ctx, c, types.CATEGORY_TRAVEL, decimal.NewFromInt(amount))
		s.Require().NoError(err)
		s.True(result.EarnedUnits.GreaterThanOrEqual(prev),
			"spend %d earned %s, below previous %s", amount, result.EarnedUnits, prev)
		prev = result.EarnedUnits
	}
}

func (s *RewardServiceSuite) TestBoundedFinalTierStopsEarning() {
	ceiling := decimal.NewFromInt(100000)
	c := &card.Card{
		ID:         "capped-tiers",
		Name:       "Capped Tiers Card",
		RewardUnit: "points",
		GeneralTiers: []card.RateTier{
			{Floor: decimal.Zero, Ceiling: &ceiling, Rate: decimal.NewFromFloat(0.01)},
		},
	}

	result, err := s.service.Compute(s.ctx, c, types.CATEGORY_GENERAL, decimal.NewFromInt(500000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(1000)))
}

func (s *RewardServiceSuite) TestCategoryFallsBackToGeneralRate() {
	// Dining has no tier schedule on the travel card; the flat general
	// rate applies.
	result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_DINING, decimal.NewFromInt(50000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(1000)))
}

func (s *RewardServiceSuite) TestCapClampsEarnedUnits() {
	result, err := s.service.Compute(s.ctx, testutil.EmeraldeCard(), types.CATEGORY_UTILITY, decimal.NewFromInt(50000))
	s.NoError(err)
	// 50000 * 0.03 = 1500, clamped to the 1000 utility cap.
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(1000)))
	s.True(result.AppliedCap)
	s.Require().NotNil(result.CapLimit)
	s.True(result.CapLimit.Equal(decimal.NewFromInt(1000)))
}

func (s *RewardServiceSuite) TestCapNotAppliedBelowLimit() {
	result, err := s.service.Compute(s.ctx, testutil.EmeraldeCard(), types.CATEGORY_UTILITY, decimal.NewFromInt(20000))
	s.NoError(err)
	s.True(result.EarnedUnits.Equal(decimal.NewFromInt(600)))
	s.False(result.AppliedCap)
	s.Nil(result.CapLimit)
}

func (s *RewardServiceSuite) TestCapIdempotence() {
	// Once clamped, a larger spend cannot earn past the cap.
	c := testutil.EmeraldeCard()
	first, err := s.service.Compute(s.ctx, c, types.CATEGORY_UTILITY, decimal.NewFromInt(50000))
	s.NoError(err)
	second, err := s.service.Compute(s.ctx, c, types.CATEGORY_UTILITY, decimal.NewFromInt(500000))
	s.NoError(err)
	s.True(first.EarnedUnits.Equal(second.EarnedUnits))
}

func (s *RewardServiceSuite) TestExclusionShortCircuits() {
	// Rent is excluded on both cards regardless of rate or cap.
	result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_RENT, decimal.NewFromInt(1000000))
	s.NoError(err)
	s.True(result.EarnedUnits.IsZero())
	s.True(result.AppliedExclusion)
	s.False(result.AppliedCap)
	s.Empty(result.Tiers)
}

func (s *RewardServiceSuite) TestInvalidAmount() {
	testCases := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-100)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := s.service.Compute(s.ctx, testutil.AtlasCard(), types.CATEGORY_TRAVEL, tc.amount)
			s.Nil(result)
			s.True(ierr.IsInvalidAmount(err))
		})
	}
}

func (s *RewardServiceSuite) TestUnresolvedCategory() {
	c := &card.Card{
		ID:         "no-rates",
		Name:       "No Rates Card",
		RewardUnit: "points",
	}

	result, err := s.service.Compute(s.ctx, c, types.CATEGORY_DINING, decimal.NewFromInt(1000))
	s.Nil(result)
	s.True(ierr.IsUnresolvedCategory(err))
}

func (s *RewardServiceSuite) TestExactDecimalsUntilFinalize() {
	result, err := s.service.Compute(s.ctx, testutil.EmeraldeCard(), types.CATEGORY_DINING, decimal.NewFromInt(12345))
	s.NoError(err)
	// 12345 * 0.03 = 370.35, kept exact until Finalize floors it.
	s.True(result.EarnedUnits.Equal(decimal.NewFromFloat(370.35)))
	result.Finalize()
	s.True(result.WholeUnits.Equal(decimal.NewFromInt(370)))
}

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cardsage/cardsage/internal/domain/query"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/testutil"
	"github.com/cardsage/cardsage/internal/types"
)

type ComparisonServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service ComparisonService
}

func TestComparisonService(t *testing.T) {
	suite.Run(t, new(ComparisonServiceSuite))
}

func (s *ComparisonServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.service = NewComparisonService(logger.GetLogger())
}

func computation(cardID string, units int64) *query.CardComputation {
	return &query.CardComputation{
		CardID:      cardID,
		EarnedUnits: decimal.NewFromInt(units),
	}
}

func (s *ComparisonServiceSuite) TestWinnerOnUnits() {
	result := s.service.Compare(s.ctx, computation("axis-atlas", 2500), computation("icici-epm", 1500), types.COMPARISON_BASIS_UNITS)
	s.Equal("axis-atlas", result.WinnerCardID)
	s.True(result.Margin.Equal(decimal.NewFromInt(1000)))
	s.Equal(types.COMPARISON_BASIS_UNITS, result.Basis)
}

func (s *ComparisonServiceSuite) TestWinnerOrderIndependent() {
	result := s.service.Compare(s.ctx, computation("icici-epm", 1500), computation("axis-atlas", 2500), types.COMPARISON_BASIS_UNITS)
	s.Equal("axis-atlas", result.WinnerCardID)
	s.True(result.Margin.Equal(decimal.NewFromInt(1000)))
}

func (s *ComparisonServiceSuite) TestTie() {
	result := s.service.Compare(s.ctx, computation("axis-atlas", 1500), computation("icici-epm", 1500), types.COMPARISON_BASIS_UNITS)
	s.Empty(result.WinnerCardID)
	s.True(result.Margin.IsZero())
}

func (s *ComparisonServiceSuite) TestValueBasisUsesBestRedemptionValue() {
	// Fewer points but a stronger per-point value wins on the value basis.
	a := &query.CardComputation{
		CardID:      "axis-atlas",
		EarnedUnits: decimal.NewFromInt(1000),
		RedemptionValues: map[types.RedemptionChannel]decimal.Decimal{
			"partner_transfer": decimal.NewFromInt(2000),
			"vouchers":         decimal.NewFromInt(1000),
		},
	}
	b := &query.CardComputation{
		CardID:      "icici-epm",
		EarnedUnits: decimal.NewFromInt(1500),
		RedemptionValues: map[types.RedemptionChannel]decimal.Decimal{
			"vouchers": decimal.NewFromInt(1500),
		},
	}

	result := s.service.Compare(s.ctx, a, b, types.COMPARISON_BASIS_VALUE)
	s.Equal("axis-atlas", result.WinnerCardID)
	s.True(result.Margin.Equal(decimal.NewFromInt(500)))
	s.Equal(types.COMPARISON_BASIS_VALUE, result.Basis)
}

func (s *ComparisonServiceSuite) TestExactUnitsNotRoundedFigures() {
	// 100.6 beats 100.4 even though both floor to 100.
	a := &query.CardComputation{CardID: "a", EarnedUnits: decimal.NewFromFloat(100.4)}
	b := &query.CardComputation{CardID: "b", EarnedUnits: decimal.NewFromFloat(100.6)}

	result := s.service.Compare(s.ctx, a, b, types.COMPARISON_BASIS_UNITS)
	s.Equal("b", result.WinnerCardID)
	s.True(result.Margin.Equal(decimal.NewFromFloat(0.2)))
}

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/query"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

type ComparisonService interface {
	// Compare ranks two per-card computations and reports the winner and
	// the absolute margin. Ties report no winner and a zero margin.
	Compare(ctx context.Context, a, b *query.CardComputation, basis types.ComparisonBasis) *query.Comparison
}

type comparisonService struct {
	log *logger.Logger
}

func NewComparisonService(log *logger.Logger) ComparisonService {
	return &comparisonService{log: log}
}

func (s *comparisonService) Compare(ctx context.Context, a, b *query.CardComputation, basis types.ComparisonBasis) *query.Comparison {
	valueA := comparableFigure(a, basis)
	valueB := comparableFigure(b, basis)

	comparison := &query.Comparison{
		Basis:  basis,
		Margin: valueA.Sub(valueB).Abs(),
	}

	switch {
	case valueA.GreaterThan(valueB):
		comparison.WinnerCardID = a.CardID
	case valueB.GreaterThan(valueA):
		comparison.WinnerCardID = b.CardID
	default:
		// strict tie: no winner, zero margin
		comparison.Margin = decimal.Zero
	}

	s.log.WithContext(ctx).Debugf(
		"comparison %s: %s=%s vs %s=%s winner=%q",
		basis, a.CardID, valueA.String(), b.CardID, valueB.String(), comparison.WinnerCardID,
	)

	return comparison
}

// comparableFigure picks the figure the basis ranks on. Raw points are not
// a valid cross-card unit for redemption comparisons since per-point value
// differs, so the VALUE basis uses the best redemption currency value.
func comparableFigure(c *query.CardComputation, basis types.ComparisonBasis) decimal.Decimal {
	if basis == types.COMPARISON_BASIS_VALUE {
		if best, ok := c.BestRedemptionValue(); ok {
			return best
		}
		return decimal.Zero
	}
	return c.EarnedUnits
}

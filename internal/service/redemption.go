package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/domain/query"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

type RedemptionService interface {
	// Value computes the currency value of a point quantity. A named
	// channel yields that single entry; an empty channel yields the full
	// set of channel values so the best option can be presented.
	Value(ctx context.Context, c *card.Card, points decimal.Decimal, channel types.RedemptionChannel) (*query.CardComputation, error)
}

type redemptionService struct {
	log *logger.Logger
}

func NewRedemptionService(log *logger.Logger) RedemptionService {
	return &redemptionService{log: log}
}

func (s *redemptionService) Value(ctx context.Context, c *card.Card, points decimal.Decimal, channel types.RedemptionChannel) (*query.CardComputation, error) {
	if points.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("point quantity must be positive").
			WithHint("Please provide a positive point quantity to value").
			WithReportableDetails(map[string]any{
				"points": points.String(),
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	result := &query.CardComputation{
		CardID:           c.ID,
		CardName:         c.Name,
		RewardUnit:       c.RewardUnit,
		EarnedUnits:      points,
		RedemptionValues: make(map[types.RedemptionChannel]decimal.Decimal),
	}

	if channel != "" {
		rate, ok := c.RedemptionRates[channel]
		if !ok {
			return nil, ierr.NewError("redemption channel not defined for card").
				WithHintf("The card does not support the %s redemption channel", channel).
				WithReportableDetails(map[string]any{
					"card_id": c.ID,
					"channel": channel.String(),
				}).
				Mark(ierr.ErrUnknownChannel)
		}
		result.RedemptionValues[channel] = points.Mul(rate)
		return result, nil
	}

	for ch, rate := range c.RedemptionRates {
		result.RedemptionValues[ch] = points.Mul(rate)
	}
	return result, nil
}

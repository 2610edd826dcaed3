package phrasing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsage/cardsage/internal/config"
	"github.com/cardsage/cardsage/internal/domain/query"
	"github.com/cardsage/cardsage/internal/httpclient"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

type stubClient struct {
	lastRequest *httpclient.Request
	response    *httpclient.Response
	err         error
}

func (c *stubClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	c.lastRequest = req
	return c.response, c.err
}

func rewardResult() *query.Result {
	capLimit := decimal.NewFromInt(1000)
	return &query.Result{
		QueryID:  "query_test",
		Intent:   types.INTENT_REWARD_CALCULATION,
		RawQuery: "spend 50000 on utilities",
		Cards: []*query.CardComputation{
			{
				CardID:      "icici-epm",
				CardName:    "ICICI Emeralde Private Metal Credit Card",
				RewardUnit:  "points",
				EarnedUnits: capLimit,
				WholeUnits:  capLimit,
				AppliedCap:  true,
				CapLimit:    &capLimit,
			},
		},
	}
}

func TestNewServicePicksTemplateWithoutAPIKey(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Phrasing.APIKey = ""

	service := NewService(cfg, &stubClient{}, logger.GetLogger())
	_, ok := service.(*templateService)
	assert.True(t, ok)
}

func TestTemplateRendersCapClamp(t *testing.T) {
	service := NewTemplateService()

	answer, err := service.Phrase(context.Background(), rewardResult(), nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "1000 points")
	assert.Contains(t, answer, "capped at 1000")
}

func TestTemplateRendersExclusion(t *testing.T) {
	service := NewTemplateService()
	result := &query.Result{
		Intent: types.INTENT_REWARD_CALCULATION,
		Cards: []*query.CardComputation{
			{CardName: "Axis Bank Atlas Credit Card", RewardUnit: "miles", AppliedExclusion: true},
		},
	}

	answer, err := service.Phrase(context.Background(), result, nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "excluded")
	assert.Contains(t, answer, "0 miles")
}

func TestTemplateRendersRedemptionValues(t *testing.T) {
	service := NewTemplateService()
	result := &query.Result{
		Intent: types.INTENT_REDEMPTION_QUERY,
		Cards: []*query.CardComputation{
			{
				CardName:    "Axis Bank Atlas Credit Card",
				RewardUnit:  "miles",
				EarnedUnits: decimal.NewFromInt(5000),
				RedemptionValues: map[types.RedemptionChannel]decimal.Decimal{
					"partner_transfer": decimal.NewFromInt(10000),
					"vouchers":         decimal.NewFromInt(5000),
				},
			},
		},
	}

	answer, err := service.Phrase(context.Background(), result, nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "₹10000 via partner_transfer")
	assert.Contains(t, answer, "₹5000 via vouchers")
}

func TestTemplateRendersComparisonWinner(t *testing.T) {
	service := NewTemplateService()
	result := rewardResult()
	result.Comparison = &query.Comparison{
		WinnerCardID: "icici-epm",
		Margin:       decimal.NewFromInt(500),
		Basis:        types.COMPARISON_BASIS_UNITS,
	}

	answer, err := service.Phrase(context.Background(), result, nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "Winner: icici-epm")
	assert.Contains(t, answer, "500")
}

func TestTemplateRendersClarification(t *testing.T) {
	service := NewTemplateService()
	result := &query.Result{
		Intent: types.INTENT_REWARD_CALCULATION,
		Clarification: &query.Clarification{
			Code:    ierr.ErrCodeInvalidAmount,
			Missing: "amount",
			Message: "Please specify the spend amount",
		},
	}

	answer, err := service.Phrase(context.Background(), result, nil)
	require.NoError(t, err)
	assert.Equal(t, "Please specify the spend amount", answer)
}

func TestLLMPhraseSendsStructuredResult(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Phrasing.APIKey = "test-key"
	cfg.Phrasing.BaseURL = "https://llm.example.com/v1"
	cfg.Phrasing.Model = "test-model"

	client := &stubClient{
		response: &httpclient.Response{
			StatusCode: 200,
			Body:       []byte(`{"choices": [{"message": {"content": "You earn 1000 points."}}]}`),
		},
	}
	service := NewService(cfg, client, logger.GetLogger())

	answer, err := service.Phrase(context.Background(), rewardResult(), nil)
	require.NoError(t, err)
	assert.Equal(t, "You earn 1000 points.", answer)

	require.NotNil(t, client.lastRequest)
	assert.Equal(t, "https://llm.example.com/v1/chat/completions", client.lastRequest.URL)
	assert.Equal(t, "Bearer test-key", client.lastRequest.Headers["Authorization"])

	var sent chatRequest
	require.NoError(t, json.Unmarshal(client.lastRequest.Body, &sent))
	assert.Equal(t, "test-model", sent.Model)
	require.Len(t, sent.Messages, 2)
	assert.Contains(t, sent.Messages[1].Content, "spend 50000 on utilities")
}

func TestLLMPhraseUpstreamFailure(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Phrasing.APIKey = "test-key"

	client := &stubClient{
		response: &httpclient.Response{StatusCode: 500, Body: []byte("boom")},
	}
	service := NewService(cfg, client, logger.GetLogger())

	_, err := service.Phrase(context.Background(), rewardResult(), nil)
	assert.True(t, ierr.IsHTTPClient(err))
}

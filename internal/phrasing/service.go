package phrasing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/config"
	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/domain/query"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/httpclient"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

// Service is the external text-generation collaborator. It receives the
// structured result plus the raw card records and produces the final
// natural-language answer. The engine's own job ends at the structured
// result; everything here is presentation.
type Service interface {
	Phrase(ctx context.Context, result *query.Result, cards []*card.Card) (string, error)
}

// NewService returns the LLM-backed phraser when an API key is configured
// and the deterministic template phraser otherwise. The template fallback
// keeps the service usable offline and in tests.
func NewService(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) Service {
	if cfg.Phrasing.APIKey == "" {
		log.Infow("no phrasing API key configured, using template phraser")
		return NewTemplateService()
	}
	return &llmService{
		cfg:    cfg,
		client: client,
		log:    log,
	}
}

const systemPrompt = `You are an expert advisor for Indian credit cards.
You are given a user's question, a structured computation result produced by
a deterministic rewards engine, and the raw card data. Base every number in
your answer ONLY on the structured result; never recompute. Be concise and
direct. Use Indian currency notation naturally. If the result asks for a
clarification, ask the user for exactly that missing detail.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type llmService struct {
	cfg    *config.Configuration
	client httpclient.Client
	log    *logger.Logger
}

func (s *llmService) Phrase(ctx context.Context, result *query.Result, cards []*card.Card) (string, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not serialize the computation result").
			Mark(ierr.ErrSystem)
	}
	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not serialize the card records").
			Mark(ierr.ErrSystem)
	}

	userPrompt := fmt.Sprintf(
		"USER QUESTION: %s\n\nSTRUCTURED RESULT:\n%s\n\nCARD DATA:\n%s",
		result.RawQuery, resultJSON, cardsJSON,
	)

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Phrasing.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not build the phrasing request").
			Mark(ierr.ErrSystem)
	}

	if s.cfg.Phrasing.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Phrasing.Timeout)
		defer cancel()
	}

	resp, err := s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    strings.TrimRight(s.cfg.Phrasing.BaseURL, "/") + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + s.cfg.Phrasing.APIKey,
		},
		Body: body,
	})
	if err != nil {
		return "", err
	}
	if err := httpclient.EnsureSuccess(resp); err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return "", ierr.WithError(err).
			WithHint("Phrasing collaborator returned an unreadable response").
			Mark(ierr.ErrHTTPClient)
	}
	if len(parsed.Choices) == 0 {
		return "", ierr.NewError("phrasing collaborator returned no choices").
			WithHint("Phrasing collaborator returned an empty response").
			Mark(ierr.ErrHTTPClient)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// templateService renders the structured result deterministically, without
// any external call. Numbers come straight from the result.
type templateService struct{}

func NewTemplateService() Service {
	return &templateService{}
}

func (s *templateService) Phrase(ctx context.Context, result *query.Result, cards []*card.Card) (string, error) {
	if result.NeedsClarification() {
		return result.Clarification.Message, nil
	}

	var b strings.Builder
	for _, c := range result.Cards {
		switch {
		case c.AppliedExclusion:
			fmt.Fprintf(&b, "%s: this category is excluded from earning, so the spend earns 0 %s. ",
				c.CardName, c.RewardUnit)
		case len(c.RedemptionValues) > 0:
			fmt.Fprintf(&b, "%s: %s %s are worth %s. ",
				c.CardName, c.EarnedUnits.Floor().String(), c.RewardUnit, formatValues(c.RedemptionValues))
		default:
			fmt.Fprintf(&b, "%s: %s %s", c.CardName, c.WholeUnits.String(), c.RewardUnit)
			if c.AppliedCap && c.CapLimit != nil {
				fmt.Fprintf(&b, " (capped at %s)", c.CapLimit.String())
			}
			b.WriteString(". ")
		}
	}

	if result.Comparison != nil {
		if result.Comparison.WinnerCardID == "" {
			b.WriteString("Both cards come out equal.")
		} else {
			fmt.Fprintf(&b, "Winner: %s by a margin of %s.",
				result.Comparison.WinnerCardID, result.Comparison.Margin.String())
		}
	}

	answer := strings.TrimSpace(b.String())
	if answer == "" {
		answer = "I could not compute an answer for that; please rephrase the question."
	}
	return answer, nil
}

func formatValues(values map[types.RedemptionChannel]decimal.Decimal) string {
	channels := make([]string, 0, len(values))
	for channel := range values {
		channels = append(channels, channel.String())
	}
	sort.Strings(channels)

	parts := make([]string, 0, len(channels))
	for _, channel := range channels {
		parts = append(parts, fmt.Sprintf("₹%s via %s",
			values[types.RedemptionChannel(channel)].String(), channel))
	}
	return strings.Join(parts, ", ")
}

package parser

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

// patternGroup ties one intent to the patterns that signal it. Groups are
// evaluated strictly in slice order, so higher-precision signals must come
// before broader ones.
type patternGroup struct {
	intent   types.Intent
	patterns []*regexp.Regexp
}

var (
	amountRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// Generic phrasing that references both cards without naming either.
	dualCardRe = regexp.MustCompile(`\bboth\s+cards?\b|\bwhich\s+card\b|\beither\s+card\b`)

	// Elliptical follow-up phrasing that leans on the previous turn.
	followUpRe = regexp.MustCompile(`\bwhat\s+about\b|\bhow\s+about\b|\band\s+(?:for|with|on)\b|\binstead\b`)
)

// intentGroups holds the fixed priority order. Redemption and comparison
// keywords are higher-precision signals that can co-occur with generic
// "spend" wording, so they are checked before the reward-calculation group.
var intentGroups = []patternGroup{
	{
		intent: types.INTENT_REDEMPTION_QUERY,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bredeem(?:ing|ed)?\b`),
			regexp.MustCompile(`\bredemption\b`),
			regexp.MustCompile(`\bpoints?\s+for\b`),
			regexp.MustCompile(`\bmiles?\s+for\b`),
			regexp.MustCompile(`\bconvert\s+(?:my\s+)?(?:points?|miles?)\b`),
			regexp.MustCompile(`\b(?:points?|miles?)\s+worth\b`),
		},
	},
	{
		intent: types.INTENT_FEATURE_COMPARISON,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcompare(?:d|s)?\b`),
			regexp.MustCompile(`\bcomparison\b`),
			regexp.MustCompile(`\bvs\.?\b`),
			regexp.MustCompile(`\bversus\b`),
			regexp.MustCompile(`\bbetter\b`),
			regexp.MustCompile(`\bwhich\s+card\b`),
			regexp.MustCompile(`\bboth\s+cards?\b`),
		},
	},
	{
		intent: types.INTENT_REWARD_CALCULATION,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bearn(?:ing|ed|s)?\b`),
			regexp.MustCompile(`\bspend(?:ing|s)?\b`),
			regexp.MustCompile(`\bspent\b`),
			regexp.MustCompile(`\bhow\s+many\s+(?:points?|miles?)\b`),
		},
	},
}

// Classifier maps normalized query text to one of the fixed intents and
// extracts which cards the text references. It is built once against the
// loaded card set and is safe for concurrent use.
type Classifier struct {
	cards []*card.Card
	log   *logger.Logger
}

func NewClassifier(cards []*card.Card, log *logger.Logger) *Classifier {
	return &Classifier{cards: cards, log: log}
}

// Classify resolves the query to the first matching pattern group in
// priority order, defaulting to general_query when nothing matches.
func (c *Classifier) Classify(text string) types.Intent {
	lowered := strings.ToLower(text)

	for _, group := range intentGroups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(lowered) {
				return group.intent
			}
		}
	}

	// A numeric amount together with a recognizable category is enough to
	// treat the query as a reward calculation even without earn/spend
	// keywords, ex "50000 on dining with Atlas?".
	if amountRe.MatchString(lowered) && matchCategory(lowered) != "" {
		return types.INTENT_REWARD_CALCULATION
	}

	return types.INTENT_GENERAL_QUERY
}

// IsFollowUp reports whether the query is elliptical follow-up phrasing
// that only makes sense against the previous turn, ex "what about groceries".
func (c *Classifier) IsFollowUp(text string) bool {
	return followUpRe.MatchString(strings.ToLower(text))
}

// ReferencedCards returns the IDs of the cards the query references via
// alias substring matching. When no alias matches but the query uses
// generic dual-card phrasing, every card is considered referenced.
func (c *Classifier) ReferencedCards(text string) []string {
	lowered := strings.ToLower(text)

	ids := make([]string, 0, 2)
	for _, cd := range c.cards {
		if cd.MatchesAlias(lowered) {
			ids = append(ids, cd.ID)
		}
	}

	if len(ids) == 0 && dualCardRe.MatchString(lowered) {
		ids = lo.Map(c.cards, func(cd *card.Card, _ int) string { return cd.ID })
	}

	return ids
}

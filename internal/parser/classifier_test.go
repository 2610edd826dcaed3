package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/testutil"
	"github.com/cardsage/cardsage/internal/types"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	log := logger.GetLogger()
	return NewClassifier(testutil.Cards(), log)
}

func TestClassifyIntent(t *testing.T) {
	c := newTestClassifier(t)

	testCases := []struct {
		name     string
		input    string
		expected types.Intent
	}{
		{"redeem_verb", "redeem 5000 points for vouchers", types.INTENT_REDEMPTION_QUERY},
		{"points_worth", "what are 10000 miles worth", types.INTENT_REDEMPTION_QUERY},
		{"convert_points", "convert my points to partner miles", types.INTENT_REDEMPTION_QUERY},
		{"compare_keyword", "compare atlas and emeralde for travel", types.INTENT_FEATURE_COMPARISON},
		{"versus", "atlas vs emeralde on 50000 dining", types.INTENT_FEATURE_COMPARISON},
		{"which_card", "which card is better for groceries", types.INTENT_FEATURE_COMPARISON},
		{"spend_keyword", "how many points if I spend 50000 on dining", types.INTENT_REWARD_CALCULATION},
		{"earn_keyword", "points earned on 300000 travel", types.INTENT_REWARD_CALCULATION},
		{"plain_question", "what is the annual fee on atlas", types.INTENT_GENERAL_QUERY},
		{"greeting", "hello there", types.INTENT_GENERAL_QUERY},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Classify(tc.input))
		})
	}
}

// Redemption and comparison signals outrank the generic spend keyword when
// both occur in one query.
func TestClassifyPriorityOrder(t *testing.T) {
	c := newTestClassifier(t)

	assert.Equal(t, types.INTENT_REDEMPTION_QUERY,
		c.Classify("redeem the points I earned from my spend"))
	assert.Equal(t, types.INTENT_FEATURE_COMPARISON,
		c.Classify("compare rewards if i spend 50000 on dining"))
	assert.Equal(t, types.INTENT_FEATURE_COMPARISON,
		c.Classify("which card earns more on utility spends"))
}

func TestClassifyAmountWithCategoryFallback(t *testing.T) {
	c := newTestClassifier(t)

	// No earn/spend keyword, but an amount plus a category reads as a
	// reward calculation.
	assert.Equal(t, types.INTENT_REWARD_CALCULATION, c.Classify("50000 on dining with atlas"))

	// An amount alone is not enough.
	assert.Equal(t, types.INTENT_GENERAL_QUERY, c.Classify("is 50000 a lot"))
}

func TestReferencedCards(t *testing.T) {
	c := newTestClassifier(t)

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single_alias", "how many points on atlas", []string{"axis-atlas"}},
		{"long_alias", "axis bank atlas travel spend", []string{"axis-atlas"}},
		{"second_card", "emeralde private metal rewards", []string{"icici-epm"}},
		{"both_named", "atlas vs emeralde", []string{"axis-atlas", "icici-epm"}},
		{"dual_phrasing", "which card is better for dining", []string{"axis-atlas", "icici-epm"}},
		{"both_cards_phrasing", "show both cards on 50000 travel", []string{"axis-atlas", "icici-epm"}},
		{"no_reference", "how many points on 50000 dining", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.expected, c.ReferencedCards(tc.input))
		})
	}
}

package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/query"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/types"
)

var (
	standaloneNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	pointQuantityRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:points?|miles?|pts)\b`)
)

// categoryKeywords binds each spend category to the keywords that resolve
// it. Categories are evaluated in types.SpendCategories order and the first
// keyword hit wins.
var categoryKeywords = map[types.SpendCategory][]string{
	types.CATEGORY_TRAVEL:     {"travel", "hotel", "flight", "airline", "airfare"},
	types.CATEGORY_DINING:     {"dining", "dine", "restaurant", "food", "eating out"},
	types.CATEGORY_GROCERY:    {"grocery", "groceries", "supermarket"},
	types.CATEGORY_UTILITY:    {"utility", "utilities", "electricity", "bill payment"},
	types.CATEGORY_FUEL:       {"fuel", "petrol", "diesel"},
	types.CATEGORY_EDUCATION:  {"education", "tuition", "school fee", "college fee"},
	types.CATEGORY_INSURANCE:  {"insurance", "premium"},
	types.CATEGORY_GOVERNMENT: {"government", "tax"},
	types.CATEGORY_RENT:       {"rent"},
	types.CATEGORY_GENERAL:    {"general", "overall", "everything"},
}

var channelKeywords = []struct {
	channel  types.RedemptionChannel
	keywords []string
}{
	{types.RedemptionChannel("vouchers"), []string{"voucher"}},
	{types.RedemptionChannel("statement_credit"), []string{"statement credit", "cashback", "cash back"}},
	{types.RedemptionChannel("partner_transfer"), []string{"transfer", "partner"}},
	{types.RedemptionChannel("catalogue"), []string{"catalogue", "catalog", "shopping"}},
}

// Extractor pulls the spend amount, category, point quantity and redemption
// channel out of currency-normalized text. Stateless, safe for concurrent
// use.
type Extractor struct {
	log *logger.Logger
}

func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract builds the entity set for one turn, then backfills anything the
// turn omitted from the prior turn's entities.
func (e *Extractor) Extract(text string, prior *query.ExtractedEntities) query.ExtractedEntities {
	lowered := strings.ToLower(text)

	entities := query.ExtractedEntities{
		Category: matchCategory(lowered),
		Channel:  matchChannel(lowered),
	}

	// Point quantity is the first number directly followed by points/miles.
	// It is consumed before amount matching so "redeem 5000 points" does
	// not double as a 5000 spend.
	if groups := pointQuantityRe.FindSubmatchIndex([]byte(lowered)); groups != nil {
		raw := lowered[groups[2]:groups[3]]
		if points, err := decimal.NewFromString(raw); err == nil {
			entities.Points = &points
		}
		lowered = lowered[:groups[0]] + lowered[groups[1]:]
	}

	// The first remaining standalone number is the spend amount. When the
	// query holds two amounts for two categories only the first is captured.
	if raw := standaloneNumberRe.FindString(lowered); raw != "" {
		if amount, err := decimal.NewFromString(raw); err == nil {
			entities.Amount = &amount
		}
	}

	return entities.MergePrior(prior)
}

func matchCategory(lowered string) types.SpendCategory {
	for _, category := range types.SpendCategories() {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return ""
}

func matchChannel(lowered string) types.RedemptionChannel {
	for _, entry := range channelKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.channel
			}
		}
	}
	return ""
}

package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Indian currency shorthand, most specific first. The suffix forms (L, k)
// must be immediately adjacent to the number so the letter L in unrelated
// words is never rewritten; the word forms tolerate whitespace.
var (
	croreRe      = regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:crores?|cr)\b`)
	lakhWordRe   = regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:lakhs?|lacs?)\b`)
	lakhSuffixRe = regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)[lL]\b`)
	thousandRe   = regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d+)?)k\b`)

	// Indian digit grouping, ex 1,00,000
	groupedNumberRe = regexp.MustCompile(`\d{1,3}(?:,\d{2,3})+(?:\.\d+)?`)
)

var (
	thousandFactor = decimal.NewFromInt(1_000)
	lakhFactor     = decimal.NewFromInt(100_000)
	croreFactor    = decimal.NewFromInt(10_000_000)
)

// CurrencyNormalizer rewrites Indian currency shorthand tokens into their
// canonical digit form, leaving all other text untouched. It is stateless
// and safe for concurrent use.
type CurrencyNormalizer struct{}

func NewCurrencyNormalizer() *CurrencyNormalizer {
	return &CurrencyNormalizer{}
}

// Normalize replaces each shorthand occurrence independently, left to
// right, non-overlapping. A token whose number part does not parse is left
// unmodified; the caller's absence-of-amount branch handles it.
func (n *CurrencyNormalizer) Normalize(text string) string {
	text = expandShorthand(text, croreRe, croreFactor)
	text = expandShorthand(text, lakhWordRe, lakhFactor)
	text = expandShorthand(text, lakhSuffixRe, lakhFactor)
	text = expandShorthand(text, thousandRe, thousandFactor)

	// Strip grouping commas last so shorthand numbers like 1,50,000 crore
	// were already consumed with their commas intact.
	text = groupedNumberRe.ReplaceAllStringFunc(text, func(match string) string {
		return strings.ReplaceAll(match, ",", "")
	})

	return text
}

func expandShorthand(text string, re *regexp.Regexp, factor decimal.Decimal) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		groups := re.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		raw := strings.ReplaceAll(groups[1], ",", "")
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return match
		}
		return value.Mul(factor).String()
	})
}

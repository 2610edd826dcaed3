package types

// SpendCategory is a normalized spend category label. Card definitions key
// their tier lists, caps and exclusions by these values, and the entity
// extractor resolves free-text keywords to them.
type SpendCategory string

const (
	CATEGORY_TRAVEL     SpendCategory = "travel"
	CATEGORY_DINING     SpendCategory = "dining"
	CATEGORY_GROCERY    SpendCategory = "grocery"
	CATEGORY_UTILITY    SpendCategory = "utility"
	CATEGORY_FUEL       SpendCategory = "fuel"
	CATEGORY_EDUCATION  SpendCategory = "education"
	CATEGORY_INSURANCE  SpendCategory = "insurance"
	CATEGORY_GOVERNMENT SpendCategory = "government"
	CATEGORY_RENT       SpendCategory = "rent"
	CATEGORY_GENERAL    SpendCategory = "general"
)

func (c SpendCategory) String() string {
	return string(c)
}

// IsGeneral reports whether the category falls back to the card's general
// earning rate.
func (c SpendCategory) IsGeneral() bool {
	return c == CATEGORY_GENERAL || c == ""
}

// SpendCategories lists every known category in extraction priority order.
// The order matters: the extractor takes the first category whose keyword
// list matches, so more specific categories come first.
func SpendCategories() []SpendCategory {
	return []SpendCategory{
		CATEGORY_TRAVEL,
		CATEGORY_DINING,
		CATEGORY_GROCERY,
		CATEGORY_UTILITY,
		CATEGORY_FUEL,
		CATEGORY_EDUCATION,
		CATEGORY_INSURANCE,
		CATEGORY_GOVERNMENT,
		CATEGORY_RENT,
		CATEGORY_GENERAL,
	}
}

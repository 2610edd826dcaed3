package types

// RedemptionChannel is a named way to convert earned points into value,
// e.g. vouchers, statement credit, partner transfer. Channels are free-form
// per card; the card's value table defines the valid set.
type RedemptionChannel string

func (c RedemptionChannel) String() string {
	return string(c)
}

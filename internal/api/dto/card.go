package dto

import (
	"github.com/cardsage/cardsage/internal/domain/card"
)

// CardResponse wraps a card definition for the API.
type CardResponse struct {
	Card *card.Card `json:"card"`
}

// ListCardsResponse lists every loaded card definition.
type ListCardsResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}

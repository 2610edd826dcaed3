package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/cardsage/cardsage/internal/api/dto"
	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/logger"
)

type CardHandler struct {
	repo card.Repository
	log  *logger.Logger
}

func NewCardHandler(repo card.Repository, log *logger.Logger) *CardHandler {
	return &CardHandler{repo: repo, log: log}
}

// ListCards returns every loaded card definition.
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response := dto.ListCardsResponse{
		Cards: lo.Map(cards, func(cd *card.Card, _ int) dto.CardResponse {
			return dto.CardResponse{Card: cd}
		}),
		Total: len(cards),
	}

	c.JSON(http.StatusOK, response)
}

// GetCard returns one card definition by id.
func (h *CardHandler) GetCard(c *gin.Context) {
	cd, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CardResponse{Card: cd})
}

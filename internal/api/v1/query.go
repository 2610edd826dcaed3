package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardsage/cardsage/internal/api/dto"
	"github.com/cardsage/cardsage/internal/conversation"
	"github.com/cardsage/cardsage/internal/domain/card"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/phrasing"
	"github.com/cardsage/cardsage/internal/service"
	"github.com/cardsage/cardsage/internal/types"
)

type QueryHandler struct {
	service       service.QueryService
	phrasing      phrasing.Service
	conversations *conversation.Store
	repo          card.Repository
	log           *logger.Logger
}

func NewQueryHandler(
	service service.QueryService,
	phrasing phrasing.Service,
	conversations *conversation.Store,
	repo card.Repository,
	log *logger.Logger,
) *QueryHandler {
	return &QueryHandler{
		service:       service,
		phrasing:      phrasing,
		conversations: conversations,
		repo:          repo,
		log:           log,
	}
}

// ProcessQuery runs one conversational turn: classify and compute, then
// hand the structured result to the phrasing collaborator. The carry-over
// entities for the conversation are owned here, not by the engine.
func (h *QueryHandler) ProcessQuery(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	// Conversation IDs are client-facing, so a new conversation gets a
	// compact short ID instead of a full ULID.
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_CONVERSATION)
	}
	ctx := types.SetConversationID(c.Request.Context(), conversationID)

	prior := h.conversations.Prior(conversationID)
	result, err := h.service.Process(ctx, req.Message, prior)
	if err != nil {
		c.Error(err)
		return
	}
	h.conversations.Remember(conversationID, result.Entities)

	cards, err := h.repo.List(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	answer, err := h.phrasing.Phrase(ctx, result, cards)
	if err != nil {
		// The structured result is still useful without the phrased
		// answer; degrade instead of failing the turn.
		h.log.WithContext(ctx).Errorw("phrasing failed", "error", err)
		answer = ""
	}

	c.JSON(http.StatusOK, dto.QueryResponse{
		ConversationID: conversationID,
		Result:         result,
		Answer:         answer,
	})
}

package dto

import (
	"github.com/cardsage/cardsage/internal/domain/query"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/validator"
)

// QueryRequest is one conversational turn. ConversationID is optional; when
// present it keys the single-turn entity carry-over so follow-ups inherit
// the amount, category or card they omitted.
type QueryRequest struct {
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

func (r *QueryRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Message == "" {
		return ierr.NewError("message is required").
			WithHint("Please provide a question to process").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// QueryResponse carries the structured engine result plus the phrased
// answer back to the caller.
type QueryResponse struct {
	ConversationID string        `json:"conversation_id"`
	Result         *query.Result `json:"result"`
	Answer         string        `json:"answer"`
}

package repository

import (
	"github.com/cardsage/cardsage/internal/config"
	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/logger"
	cardfileRepo "github.com/cardsage/cardsage/internal/repository/cardfile"
)

// NewCardRepository builds the process-wide read-only card table from the
// configured definition directory. Called once at startup; any integrity
// violation fails the build before queries are served.
func NewCardRepository(cfg *config.Configuration, log *logger.Logger) (card.Repository, error) {
	return cardfileRepo.NewStore(cfg.Cards.Dir, log)
}

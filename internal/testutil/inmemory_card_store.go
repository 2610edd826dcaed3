package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/cardsage/cardsage/internal/domain/card"
	ierr "github.com/cardsage/cardsage/internal/errors"
)

// InMemoryCardStore is an in-memory implementation of the card repository
type InMemoryCardStore struct {
	mu    sync.RWMutex
	cards map[string]*card.Card
}

// NewInMemoryCardStore creates a new instance of InMemoryCardStore
func NewInMemoryCardStore(cards ...*card.Card) *InMemoryCardStore {
	store := &InMemoryCardStore{
		cards: make(map[string]*card.Card),
	}
	for _, c := range cards {
		store.cards[c.ID] = c
	}
	return store
}

// Add registers a card definition in the store
func (s *InMemoryCardStore) Add(c *card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[c.ID] = c
}

// Get retrieves a card by id
func (s *InMemoryCardStore) Get(ctx context.Context, id string) (*card.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[id]
	if !ok {
		return nil, ierr.NewErrorf("card %s not found", id).
			WithHint("The requested card is not configured").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

// List returns all cards ordered by id
func (s *InMemoryCardStore) List(ctx context.Context) ([]*card.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*card.Card, 0, len(s.cards))
	for _, c := range s.cards {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].ID < cards[j].ID
	})
	return cards, nil
}

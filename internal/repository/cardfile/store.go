package cardfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/cardsage/cardsage/internal/domain/card"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/validator"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// consumedFields are the card-record fields the calculation pipeline reads.
// Everything else in a card file passes through untouched to the phrasing
// collaborator via Card.Sections.
var consumedFields = map[string]struct{}{
	"id":                 {},
	"name":               {},
	"aliases":            {},
	"reward_unit":        {},
	"rate_general":       {},
	"rate_tiers":         {},
	"category_tiers":     {},
	"accrual_exclusions": {},
	"category_caps":      {},
	"value_per_point":    {},
}

// Store is an immutable in-memory card table loaded from JSON definition
// files. Built once at process start; safe for concurrent readers.
type Store struct {
	cards map[string]*card.Card
	order []string
}

// NewStore loads every *.json file under dir, validates each card and
// rejects the whole build on the first integrity violation. Configuration
// defects never reach query processing.
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not read card data directory %s", dir).
			Mark(ierr.ErrSystem)
	}

	store := &Store{cards: make(map[string]*card.Card)}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		c, err := loadCard(path)
		if err != nil {
			return nil, err
		}
		if _, exists := store.cards[c.ID]; exists {
			return nil, ierr.NewError("duplicate card id").
				WithHintf("Card %s is defined more than once", c.ID).
				Mark(ierr.ErrValidation)
		}

		store.cards[c.ID] = c
		store.order = append(store.order, c.ID)
		log.Infow("loaded card definition",
			"card_id", c.ID,
			"name", c.Name,
			"file", entry.Name(),
		)
	}

	if len(store.cards) == 0 {
		return nil, ierr.NewError("no card definitions found").
			WithHintf("Directory %s holds no card JSON files", dir).
			Mark(ierr.ErrSystem)
	}

	sort.Strings(store.order)
	return store, nil
}

func loadCard(path string) (*card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Could not read card file %s", path).
			Mark(ierr.ErrSystem)
	}

	var c card.Card
	if err := jsonCodec.Unmarshal(data, &c); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Card file %s is not valid JSON", path).
			Mark(ierr.ErrValidation)
	}

	// Capture the fields the calculation does not consume for pass-through.
	var raw map[string]json.RawMessage
	if err := jsonCodec.Unmarshal(data, &raw); err == nil {
		sections := make(map[string]json.RawMessage)
		for key, value := range raw {
			if _, consumed := consumedFields[key]; !consumed {
				sections[key] = value
			}
		}
		if len(sections) > 0 {
			c.Sections = sections
		}
	}

	// Structural schema first, then the semantic tier and cap invariants.
	if err := validator.ValidateRequest(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Get implements card.Repository.
func (s *Store) Get(ctx context.Context, id string) (*card.Card, error) {
	c, ok := s.cards[id]
	if !ok {
		return nil, ierr.NewError("card not found").
			WithHintf("No card with id %s is loaded", id).
			WithReportableDetails(map[string]any{"card_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

// List implements card.Repository. Order is stable across calls.
func (s *Store) List(ctx context.Context) ([]*card.Card, error) {
	cards := make([]*card.Card, 0, len(s.cards))
	for _, id := range s.order {
		cards = append(cards, s.cards[id])
	}
	return cards, nil
}

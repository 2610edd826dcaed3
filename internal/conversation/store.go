package conversation

import (
	"time"

	goCache "github.com/patrickmn/go-cache"

	"github.com/cardsage/cardsage/internal/config"
	"github.com/cardsage/cardsage/internal/domain/query"
)

// Store keeps the previous turn's extracted entities per conversation so a
// follow-up ("what about ICICI?") inherits the amount and category it
// omitted. The engine itself holds no conversational state; this store is
// owned by the API layer, which passes the prior entities into each
// Process call. Entries expire after the configured TTL.
type Store struct {
	cache *goCache.Cache
}

func NewStore(cfg *config.Configuration) *Store {
	ttl := cfg.Conversation.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	cleanup := cfg.Conversation.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Hour
	}
	return &Store{cache: goCache.New(ttl, cleanup)}
}

// Prior returns the previous turn's entities for the conversation, or nil
// when the conversation is new or expired.
func (s *Store) Prior(conversationID string) *query.ExtractedEntities {
	if conversationID == "" {
		return nil
	}
	if value, ok := s.cache.Get(conversationID); ok {
		if entities, ok := value.(query.ExtractedEntities); ok {
			return &entities
		}
	}
	return nil
}

// Remember stores the turn's merged entities as the carry-over for the
// next turn, resetting the TTL.
func (s *Store) Remember(conversationID string, entities query.ExtractedEntities) {
	if conversationID == "" {
		return
	}
	s.cache.SetDefault(conversationID, entities)
}

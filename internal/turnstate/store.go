// Package turnstate keeps bounded per-user conversational context between turns.
package turnstate

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/dinewise/internal/domain/intent"
)

// TurnState is the short-term memory carried from a user's previous turn.
// It lets follow-up queries like "what dishes do they have there" resolve
// against the entity of the prior answer.
type TurnState struct {
	UserID         string
	LastEntityID   string
	LastEntityName string
	LastIntent     intent.Intent
	UpdatedAt      time.Time
}

// Store is an in-process LRU of turn states with a TTL. Entries for
// inactive users expire; the capacity bound keeps memory flat under
// many concurrent users.
type Store struct {
	cache *expirable.LRU[string, TurnState]
}

// NewStore creates a turn-state store holding at most capacity entries,
// each living for ttl after its last write.
func NewStore(capacity int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, TurnState](capacity, nil, ttl),
	}
}

// Get returns the stored state for a user, if any.
func (s *Store) Get(userID string) (TurnState, bool) {
	return s.cache.Get(userID)
}

// Put records the state of a completed turn for a user.
func (s *Store) Put(state TurnState) {
	state.UpdatedAt = time.Now()
	s.cache.Add(state.UserID, state)
}

// Forget drops a user's state.
func (s *Store) Forget(userID string) {
	s.cache.Remove(userID)
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	return s.cache.Len()
}

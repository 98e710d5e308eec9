package cart

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore keeps one cart per client session in memory. It is handed
// to handlers explicitly; there is no package-level singleton. Carts are
// values, so concurrent readers of a snapshot never race with writers.
type SessionStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		carts: make(map[string]Cart),
	}
}

// Get returns the cart for a session, or an empty cart when the session
// is unknown.
func (s *SessionStore) Get(sessionID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[sessionID]
}

// Save stores the snapshot under the session id, replacing any previous one.
func (s *SessionStore) Save(sessionID string, c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = c
}

// Delete drops the session's cart entirely.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// NewSessionID mints an opaque id for a fresh cart session.
func NewSessionID() string {
	return uuid.New().String()
}

package session

import (
	"sync"
	"time"

	"github.com/thejerf/abtime"
)

// DefaultTTL is the fixed session lifetime when none is configured.
const DefaultTTL = 8 * time.Hour

// Store holds live sessions keyed by token. All methods are safe for
// concurrent use; the single mutex is held only for the map operation and
// the expiry check.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl   time.Duration
	clock abtime.AbstractTime
}

// NewStore returns a store with the given TTL. A zero ttl falls back to
// DefaultTTL and a nil clock to real time; tests pass abtime.NewManual().
func NewStore(ttl time.Duration, clock abtime.AbstractTime) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &Store{
		sessions: map[string]*Session{},
		ttl:      ttl,
		clock:    clock,
	}
}

// Create issues a token for username with a snapshot of its routes and
// filters. The snapshot is copied so later edits to the account record do
// not leak into the live session.
func (s *Store) Create(username string, routes []string, filters map[string]string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	sess := &Session{
		Token:    token,
		Username: username,
		Routes:   append([]string(nil), routes...),
		Filters:  make(map[string]string, len(filters)),
		Expiry:   s.clock.Now().Add(s.ttl),
	}
	for k, v := range filters {
		sess.Filters[k] = v
	}
	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return token, nil
}

// Get returns the session for token, or nil when the token is unknown or
// expired. An expired entry is removed as a side effect of the lookup.
func (s *Store) Get(token string) *Session {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if sess.Expiry.Before(s.clock.Now()) {
		delete(s.sessions, token)
		return nil
	}
	return sess
}

// Destroy removes the session for token if present.
func (s *Store) Destroy(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Package session houses concrete implementations of core.ShortTermStore.
// The interface itself (and the Turn type) live in the core package to
// centralize domain contracts. Keeping only implementations here lets
// additional backends (Redis, Postgres, ...) be added in sub-packages
// without changing any calling code; only the wiring layer decides which
// implementation to instantiate.
package session

import (
	"sync"

	"github.com/agentroute/agentroute/core"
)

// DefaultMaxTurns is the per-session bound applied when none is configured.
const DefaultMaxTurns = 50

// Options configure the in-memory store.
type Options struct {
	// MaxTurns bounds each session's buffer; the oldest turn is evicted
	// (FIFO) before a new one is appended once the bound is reached.
	MaxTurns int
}

// InMemoryStore is a volatile ShortTermStore keeping per-session bounded
// turn buffers in a process-local map. It is safe for concurrent access and
// enforces strict session isolation: turns for one session are never
// visible under another. Returned slices are copies to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	maxTurns int
	sessions map[string][]core.Turn
}

var _ core.ShortTermStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory short-term store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{MaxTurns: DefaultMaxTurns}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	return &InMemoryStore{
		maxTurns: opts.MaxTurns,
		sessions: make(map[string][]core.Turn),
	}
}

// Append adds a turn to the session's buffer, creating the session lazily
// and evicting the oldest turn first when the bound is reached.
func (s *InMemoryStore) Append(sessionID string, turn core.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[sessionID]
	if len(turns) >= s.maxTurns {
		turns = turns[len(turns)-s.maxTurns+1:]
	}
	s.sessions[sessionID] = append(turns, turn)
	return nil
}

// Get returns a copy of the session's turns, oldest first. An unknown
// session yields an empty history, not an error.
func (s *InMemoryStore) Get(sessionID string) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Clear removes the session and its turns entirely.
func (s *InMemoryStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// MaxTurns reports the configured per-session bound.
func (s *InMemoryStore) MaxTurns() int { return s.maxTurns }

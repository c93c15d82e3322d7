package session

import (
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/interview-agent/internal/types"
)

// entry pairs a session state with its turn gate. The semaphore has
// weight 1: a session processes one turn at a time, and a second caller
// is rejected rather than queued.
type entry struct {
	state *types.SessionState
	gate  *semaphore.Weighted
}

// Store is an in-memory session registry safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Put registers a new session state under its id.
func (s *Store) Put(state *types.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = &entry{
		state: state,
		gate:  semaphore.NewWeighted(1),
	}
}

// Get returns the session state for an id.
func (s *Store) Get(id string) (*types.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, &NotFoundError{SessionID: id}
	}
	return e.state, nil
}

// Acquire takes the session's turn gate without blocking. It returns a
// release func on success and a BusyError when a turn is already in
// flight.
func (s *Store) Acquire(id string) (func(), error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{SessionID: id}
	}
	if !e.gate.TryAcquire(1) {
		return nil, &BusyError{SessionID: id}
	}
	return func() { e.gate.Release(1) }, nil
}

// Delete removes a session. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// IDs returns all known session ids, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

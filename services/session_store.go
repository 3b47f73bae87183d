// services/session_store.go
package services

import (
	"sync"

	"pokemon-game-server/models"

	"github.com/google/uuid"
)

// sessionEntry is the live state of one session. mu serializes every read
// and write of state, pending and ended.
type sessionEntry struct {
	mu      sync.Mutex
	settled *sync.Cond // broadcast when a pending catch finishes or the session ends
	state   models.Session
	pending int  // catches that reserved a roster slot and are still fetching
	ended   bool // removed from the store while an operation was in flight
}

func newSessionEntry(id string) *sessionEntry {
	e := &sessionEntry{state: models.Session{ID: id, Roster: []models.Entity{}}}
	e.settled = sync.NewCond(&e.mu)
	return e
}

// SessionStore maps session ids to live sessions. The map lock only guards
// insert, delete and lookup; per-session state has its own lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*sessionEntry)}
}

// Create inserts a fresh zero-valued session and returns its id.
func (s *SessionStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := uuid.NewString()
		if _, taken := s.sessions[id]; taken {
			continue
		}
		s.sessions[id] = newSessionEntry(id)
		return id
	}
}

func (s *SessionStore) get(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// Delete removes id. In-flight operations on it observe ended and give up.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	entry.ended = true
	entry.settled.Broadcast()
	entry.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the session safe to hand to callers.
func (s *SessionStore) Snapshot(id string) (models.Session, error) {
	entry, err := s.get(id)
	if err != nil {
		return models.Session{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.snapshot(), nil
}

func (e *sessionEntry) snapshot() models.Session {
	out := e.state
	out.Roster = append([]models.Entity(nil), e.state.Roster...)
	if e.state.CurrentOpponent != nil {
		opp := *e.state.CurrentOpponent
		out.CurrentOpponent = &opp
	}
	return out
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StoreStats summarizes all live sessions.
type StoreStats struct {
	Active         int
	GameOver       int
	TotalCaught    int
	HighestScore   int
	PendingCatches int
}

func (s *SessionStore) Stats() StoreStats {
	s.mu.RLock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	stats := StoreStats{Active: len(entries)}
	for _, e := range entries {
		e.mu.Lock()
		if e.state.GameOver() {
			stats.GameOver++
		}
		stats.TotalCaught += len(e.state.Roster)
		stats.PendingCatches += e.pending
		if e.state.Score > stats.HighestScore {
			stats.HighestScore = e.state.Score
		}
		e.mu.Unlock()
	}
	return stats
}

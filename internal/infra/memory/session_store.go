package memory

import (
	"context"
	"sync"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

// SessionStore parks session snapshots in process memory. Every Get
// restores a private tracker, so concurrent requests on one session never
// share mutable state; the last Save wins.
type SessionStore struct {
	mu        sync.RWMutex
	snapshots map[string]quiz.Snapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{snapshots: make(map[string]quiz.Snapshot)}
}

func (s *SessionStore) Save(_ context.Context, id string, session *quiz.Session) error {
	snap := session.Snapshot()
	s.mu.Lock()
	s.snapshots[id] = snap
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return quiz.RestoreSession(snap)
}

// Take removes the session under the write lock, so only one caller can
// claim it.
func (s *SessionStore) Take(_ context.Context, id string) (*quiz.Session, error) {
	s.mu.Lock()
	snap, ok := s.snapshots[id]
	delete(s.snapshots, id)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return quiz.RestoreSession(snap)
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.snapshots, id)
	s.mu.Unlock()
	return nil
}

// Len reports the number of parked sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

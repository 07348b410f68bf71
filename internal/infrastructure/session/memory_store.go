package session

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/hocus-focus/internal/domain/repository"
)

var _ repository.SessionRepository = (*MemoryStore)(nil)

type memoryEntry struct {
	sess      repository.Session
	expiresAt time.Time
}

// MemoryStore is the single-process session store. Expired entries are
// dropped lazily on read.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, sess repository.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{sess: sess}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.sessions[sess.UserID] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*repository.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.sessions, userID)
		return nil, nil
	}
	out := e.sess
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

package cache

import (
	"context"
	"sync"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

// MemorySessionStore backs local runs and tests where Redis is overkill.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]checkout.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]checkout.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess *checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, id string) (*checkout.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := sess
	return &out, nil
}

var _ usecase.SessionStore = (*MemorySessionStore)(nil)

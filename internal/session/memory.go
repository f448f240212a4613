package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default in-process session backend. Expired entries are
// pruned lazily on each Get, so no background timer is needed.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time // overridable in tests
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, token string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) Prune(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return nil
}

func (s *MemoryStore) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for token, sess := range s.sessions {
		if sess.IssuedAt.Before(cutoff) {
			delete(s.sessions, token)
		}
	}
}

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. It backs the service when no
// Redis URL is configured.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Session)}
}

func (s *MemoryStore) Set(_ context.Context, id string, sess Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.expired(time.Now()) {
		delete(s.items, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.items {
		if sess.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

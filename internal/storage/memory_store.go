package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory KVStore for tests and local development.
// Setting Unavailable makes every operation fail, simulating a store the
// gateway cannot reach.
type MemoryStore struct {
	mu          sync.RWMutex
	data        map[string]string
	Unavailable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Unavailable {
		return "", context.DeadlineExceeded
	}
	value, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Unavailable {
		return context.DeadlineExceeded
	}
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Unavailable {
		return context.DeadlineExceeded
	}
	delete(s.data, key)
	return nil
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

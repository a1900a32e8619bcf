package repository

import (
	"context"
	"sync"
)

// MemoryStateStore keeps view state in process memory
type MemoryStateStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStateStore creates an empty in-memory store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: make(map[string]string)}
}

var _ StateStoreInterface = (*MemoryStateStore)(nil)

func (s *MemoryStateStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStateStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

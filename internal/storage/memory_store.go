package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. An optional byte quota emulates a
// size-limited local store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
	writes int
}

// NewMemoryStore creates an empty store without a quota.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// NewMemoryStoreWithQuota creates an empty store that rejects writes once
// the total size of keys and values would exceed quota bytes.
func NewMemoryStoreWithQuota(quota int) *MemoryStore {
	s := NewMemoryStore()
	s.quota = quota
	return s
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		size := s.sizeLocked() - s.entrySize(key) + len(key) + len(value)
		if size > s.quota {
			return fmt.Errorf("set %q: %w (%d > %d bytes)", key, ErrQuotaExceeded, size, s.quota)
		}
	}
	s.values[key] = value
	s.writes++
	return nil
}

// Delete implements Store
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Writes returns how many successful Set calls the store has served.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Size returns the total bytes of keys and values held.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sizeLocked()
}

func (s *MemoryStore) sizeLocked() int {
	total := 0
	for k, v := range s.values {
		total += len(k) + len(v)
	}
	return total
}

func (s *MemoryStore) entrySize(key string) int {
	v, ok := s.values[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}

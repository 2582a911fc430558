// Package memory implements an in-memory kv medium for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"storefront/internal/kv/core"
)

// Store implements core.Medium backed by process memory.
type Store struct {
	mu   sync.RWMutex
	vals map[string][]byte
	// FailSet, when non-nil, is returned by Set instead of writing.
	FailSet error
}

// New returns an empty in-memory medium.
func New() *Store { return &Store{vals: make(map[string][]byte)} }

func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set replaces the value for key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.vals[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key; absent keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
	return nil
}

// Keys returns the number of stored keys.
func (s *Store) Keys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vals)
}

func (s *Store) Close() error { return nil }

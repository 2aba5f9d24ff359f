package memory

import (
	"context"
	"sync"

	"kharcha/internal/store"
)

// Store keeps values in process memory. It is the default backend for tests
// and for throwaway sessions.
type Store struct {
	mu    sync.Mutex
	items map[string][]byte
}

var _ store.KV = (*Store)(nil)

func New() *Store {
	return &Store{items: map[string][]byte{}}
}

// Get returns a copy of the stored bytes.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of keys held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

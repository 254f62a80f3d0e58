package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and as a fallback when no
// database path is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte

	// FailWrites makes every Put/Delete fail; tests use it to pin the
	// degrade-silently behaviour of the repositories.
	FailWrites bool
	// FailReads makes every Get fail.
	FailReads bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: map[string]map[string][]byte{}}
}

// Get returns a copy of the stored value or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads {
		return nil, errStoreUnavailable
	}
	values, ok := s.buckets[bucket]
	if !ok {
		return nil, ErrNotFound
	}
	value, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	return dup, nil
}

// Put stores a copy of the value.
func (s *MemoryStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errStoreUnavailable
	}
	values, ok := s.buckets[bucket]
	if !ok {
		values = map[string][]byte{}
		s.buckets[bucket] = values
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	values[key] = dup
	return nil
}

// Delete removes the key; deleting an absent key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errStoreUnavailable
	}
	if values, ok := s.buckets[bucket]; ok {
		delete(values, key)
	}
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

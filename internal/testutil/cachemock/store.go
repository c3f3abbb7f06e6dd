package cachemock

import (
	"context"
	"sync"
	"time"

	"loanguard-backend/internal/domain/kv"
)

var _ kv.Store = (*Store)(nil)

// Store is an in-memory kv.Store without expiry, recording the TTLs it was
// handed so tests can assert on them.
type Store struct {
	mu    sync.Mutex
	ints  map[string]int64
	bytes map[string][]byte
	TTLs  map[string]time.Duration
}

func New() *Store {
	return &Store{
		ints:  map[string]int64{},
		bytes: map[string][]byte{},
		TTLs:  map[string]time.Duration{},
	}
}

func (s *Store) GetInt64(ctx context.Context, key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.ints[key]
	return v, ok
}

func (s *Store) SetInt64(ctx context.Context, key string, val int64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints[key] = val
	s.TTLs[key] = ttl
}

func (s *Store) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.bytes[key]
	return v, ok
}

func (s *Store) SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bytes[key] = val
	s.TTLs[key] = ttl
}

func (s *Store) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ints, key)
	delete(s.bytes, key)
	delete(s.TTLs, key)
}

// Dead is a kv.Store that never stores and never hits, standing in for an
// unreachable cache backend.
type Dead struct{}

var _ kv.Store = Dead{}

func (Dead) GetInt64(context.Context, string) (int64, bool)          { return 0, false }
func (Dead) SetInt64(context.Context, string, int64, time.Duration)  {}
func (Dead) GetBytes(context.Context, string) ([]byte, bool)         { return nil, false }
func (Dead) SetBytes(context.Context, string, []byte, time.Duration) {}
func (Dead) Delete(context.Context, string)                          {}

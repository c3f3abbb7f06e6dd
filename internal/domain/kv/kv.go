package kv

import (
	"context"
	"time"
)

// Store is an advisory TTL key-value cache. Every read is a hint with a
// full-query fallback on the caller's side, and every failure is swallowed
// by the implementation: a dead cache degrades to permanent misses, never
// to errors.
type Store interface {
	GetInt64(ctx context.Context, key string) (int64, bool)
	SetInt64(ctx context.Context, key string, val int64, ttl time.Duration)
	GetBytes(ctx context.Context, key string) ([]byte, bool)
	SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

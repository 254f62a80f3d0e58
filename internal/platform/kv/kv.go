package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal durable key/value port the storefront persists
// through. Values are opaque byte payloads grouped into buckets; the real
// implementation is an embedded bbolt database, tests use the in-memory
// variant.
type Store interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	Close() error
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var errStoreUnavailable = errors.New("kv: store unavailable")

const defaultOpenTimeout = 5 * time.Second

// BoltStore persists values in an embedded bbolt database file. It is the
// durable analogue of the browser's local storage: one file per deployment,
// values scoped by bucket and client key.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating when absent) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("kv: database path is required")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: defaultOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

// Get returns the stored value or ErrNotFound.
func (s *BoltStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errStoreUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}
		stored := b.Get([]byte(key))
		if stored == nil {
			return ErrNotFound
		}
		value = make([]byte, len(stored))
		copy(value, stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores the value, creating the bucket when needed.
func (s *BoltStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	if s == nil || s.db == nil {
		return errStoreUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

// Delete removes the key; deleting an absent key or bucket is not an error.
func (s *BoltStore) Delete(ctx context.Context, bucket, key string) error {
	if s == nil || s.db == nil {
		return errStoreUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

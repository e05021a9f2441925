package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small namespaced key-value surface over whichever durability
// tier backs it. Values are opaque bytes; callers own serialization.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Well-known keys. Session and admin credentials live in disjoint
// namespaces and must never share a key.
const (
	KeySession      = "session"
	KeyAdminSession = "admin:session"
)

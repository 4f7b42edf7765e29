// Package store defines the key-value medium the link store persists into.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Persisted keys.
const (
	KeyLinks      = "links"
	KeyCategories = "categories"
)

// ErrNotFound is returned by Get when nothing was ever written under a key.
var ErrNotFound = errors.New("key not found")

// Backend is a durable string-keyed blob store.
// Set overwrites the whole value; there are no partial writes.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Kind names a Backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// ParseKind validates a backend name from configuration.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFile, KindSQLite, KindRedis, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want file, sqlite, redis or memory)", s)
	}
}

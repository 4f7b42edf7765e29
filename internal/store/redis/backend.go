package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linker/internal/store"
)

// Backend handles Redis operations for the persisted collections
type Backend struct {
	client *redis.Client
}

// NewBackend wraps an already connected client
func NewBackend(client *redis.Client) *Backend {
	return &Backend{
		client: client,
	}
}

// Get retrieves a value, store.ErrNotFound if the key was never written
func (b *Backend) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, Key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return data, nil
}

// Set overwrites a value; collections never expire
func (b *Backend) Set(ctx context.Context, name string, value []byte) error {
	if err := b.client.Set(ctx, Key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// Ping checks the connection
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the client
func (b *Backend) Close() error {
	return b.client.Close()
}

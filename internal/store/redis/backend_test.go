package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linker/internal/store"
	"github.com/MrSnakeDoc/linker/internal/store/storetest"
)

func newTestBackend(t *testing.T) (*Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	b := NewBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func TestBackendContract(t *testing.T) {
	b, _ := newTestBackend(t)
	storetest.Run(t, b)
}

func TestKeysAreNamespacedWithoutTTL(t *testing.T) {
	b, mr := newTestBackend(t)
	if err := b.Set(context.Background(), store.KeyLinks, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	got, err := mr.Get("linker:links")
	if err != nil {
		t.Fatalf("linker:links not written: %v", err)
	}
	if got != "[]" {
		t.Errorf("linker:links = %q", got)
	}
	if ttl := mr.TTL("linker:links"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}
}

func TestBackendErrors(t *testing.T) {
	b, mr := newTestBackend(t)
	ctx := context.Background()

	if err := b.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	mr.Close()
	if err := b.Ping(ctx); err == nil {
		t.Error("Ping() should fail once the server is gone")
	}
	if _, err := b.Get(ctx, store.KeyLinks); err == nil || errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() error = %v, want a connection error", err)
	}
	if err := b.Set(ctx, store.KeyLinks, []byte(`[]`)); err == nil {
		t.Error("Set() should fail once the server is gone")
	}
}

func TestKey(t *testing.T) {
	if got := Key("categories"); got != "linker:categories" {
		t.Errorf("Key() = %q", got)
	}
}

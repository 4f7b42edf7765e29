package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/linker/internal/store"
)

// Backend keeps values in a map. Nothing survives the process.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte

	// failSet, when non-nil, is returned by Set before touching the map.
	failSet error
	// failGet, when non-nil, is returned by Get.
	failGet error
	writes  int
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.failGet != nil {
		return nil, b.failGet
	}
	v, ok := b.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.writes++
	if b.failSet != nil {
		return b.failSet
	}
	v := make([]byte, len(value))
	copy(v, value)
	b.values[key] = v
	return nil
}

func (b *Backend) Close() error { return nil }

// FailSet makes every following Set return err. Pass nil to recover.
func (b *Backend) FailSet(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSet = err
}

// FailGet makes every following Get return err. Pass nil to recover.
func (b *Backend) FailGet(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failGet = err
}

// Writes returns how many times Set was called, failed calls included.
func (b *Backend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// Put stores a raw value, bypassing failure injection. Used to seed fixtures.
func (b *Backend) Put(key string, value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = append([]byte(nil), value...)
}

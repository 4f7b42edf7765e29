// Package storetest holds behavior shared by every store.Backend.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/linker/internal/store"
)

// Run checks the Backend contract against b.
func Run(t *testing.T, b store.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := b.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := []byte(`[{"id":1,"url":"https://a","title":"A","category":"Work"}]`)
		if err := b.Set(ctx, store.KeyLinks, want); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := b.Get(ctx, store.KeyLinks)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Get() = %s, want %s", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := b.Set(ctx, store.KeyCategories, []byte(`["General"]`)); err != nil {
			t.Fatal(err)
		}
		if err := b.Set(ctx, store.KeyCategories, []byte(`["Work"]`)); err != nil {
			t.Fatal(err)
		}
		got, err := b.Get(ctx, store.KeyCategories)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != `["Work"]` {
			t.Errorf("Get() after overwrite = %s", got)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := b.Set(ctx, store.KeyLinks, []byte(`[]`)); err != nil {
			t.Fatal(err)
		}
		got, err := b.Get(ctx, store.KeyCategories)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != `["Work"]` {
			t.Errorf("categories changed by links write: %s", got)
		}
	})
}

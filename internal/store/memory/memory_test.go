package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/linker/internal/store/storetest"
)

func TestBackendContract(t *testing.T) {
	storetest.Run(t, New())
}

func TestFailureInjection(t *testing.T) {
	ctx := context.Background()
	b := New()
	boom := errors.New("boom")

	b.FailSet(boom)
	if err := b.Set(ctx, "links", []byte(`[]`)); !errors.Is(err, boom) {
		t.Errorf("Set() error = %v, want boom", err)
	}
	if b.Writes() != 1 {
		t.Errorf("Writes() = %d, want failed attempt counted", b.Writes())
	}

	b.FailSet(nil)
	b.Put("links", []byte(`[1]`))
	b.FailGet(boom)
	if _, err := b.Get(ctx, "links"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want boom", err)
	}

	b.FailGet(nil)
	got, err := b.Get(ctx, "links")
	if err != nil || string(got) != `[1]` {
		t.Errorf("Get() = %s, %v", got, err)
	}
	got[0] = 'x'
	if again, _ := b.Get(ctx, "links"); string(again) != `[1]` {
		t.Error("Get() must return a copy")
	}
}

package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/store/memory"
)

const bookmarksYAML = `---
- Work:
    - Github:
        - abbr: GH
          href: https://github.com/
- Games:
    - Steam:
        - abbr: ST
          href: https://store.steampowered.com/
`

const servicesYAML = `---
- Personal:
    - Jellyfin:
        href: https://jellyfin.domain.ext
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newStore(t *testing.T) *linkstore.Store {
	t.Helper()
	s := linkstore.New(memory.New(), logger.NewNop(), linkstore.Options{})
	s.Load(context.Background())
	return s
}

func TestImportReloader_Reload(t *testing.T) {
	dir := t.TempDir()
	bookmarks := writeFile(t, dir, "bookmarks.yaml", bookmarksYAML)
	services := writeFile(t, dir, "services.yaml", servicesYAML)

	store := newStore(t)
	ir := NewImportReloader(bookmarks, services, store, logger.NewNop(), time.Hour, nil)

	res, err := ir.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if res.Added != 2 || res.UnknownCategory != 1 {
		t.Errorf("Reload() = %+v, want 2 added and 1 unknown category", res)
	}

	// Second import adds nothing new
	res, err = ir.Reload(context.Background())
	if err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}
	if res.Added != 0 || res.Duplicates != 2 {
		t.Errorf("second Reload() = %+v, want only duplicates", res)
	}
	if n := len(store.Links()); n != 2 {
		t.Errorf("store has %d links, want 2", n)
	}
}

func TestImportReloader_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	services := writeFile(t, dir, "services.yaml", servicesYAML)

	store := newStore(t)
	ir := NewImportReloader(filepath.Join(dir, "missing.yaml"), services, store, logger.NewNop(), time.Hour, nil)

	res, err := ir.Reload(context.Background())
	if err == nil {
		t.Error("Reload() should report the missing bookmarks file")
	}
	if res.Added != 1 {
		t.Errorf("services should still import, got %+v", res)
	}
}

func TestImportReloader_Disabled(t *testing.T) {
	ir := NewImportReloader("", "", newStore(t), logger.NewNop(), time.Hour, nil)
	if ir.Enabled() {
		t.Error("Enabled() should be false without files")
	}
	if err := ir.Start(context.Background()); !errors.Is(err, ErrNoSources) {
		t.Errorf("Start() error = %v, want ErrNoSources", err)
	}
}

func TestImportReloader_ManualTrigger(t *testing.T) {
	dir := t.TempDir()
	bookmarks := writeFile(t, dir, "bookmarks.yaml", "---\n- Work: []\n")

	store := newStore(t)
	trigger := make(chan struct{}, 1)
	ir := NewImportReloader(bookmarks, "", store, logger.NewNop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ir.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer ir.Stop()

	if n := len(store.Links()); n != 0 {
		t.Fatalf("initial import of empty file added %d links", n)
	}

	writeFile(t, dir, "bookmarks.yaml", bookmarksYAML)
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(store.Links()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("manual trigger did not import, store has %d links", len(store.Links()))
}

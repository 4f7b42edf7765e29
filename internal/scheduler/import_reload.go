package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/sources/homepage"
)

// ErrNoSources is returned when neither a bookmarks nor a services file is configured
var ErrNoSources = errors.New("no import source configured")

// Importer is the part of the link store the reloader feeds
type Importer interface {
	Import(ctx context.Context, candidates []domain.Link) linkstore.ImportResult
}

// ImportReloader periodically imports Homepage bookmarks and services as links
type ImportReloader struct {
	bookmarks     *homepage.Loader[homepage.BookmarksConfig]
	services      *homepage.Loader[homepage.ServicesConfig]
	store         Importer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewImportReloader creates a new import reloader. Empty file paths disable that source.
func NewImportReloader(
	bookmarkFile string,
	serviceFile string,
	store Importer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ImportReloader {
	ir := &ImportReloader{
		store:         store,
		logger:        log.With(logger.String("component", "importer")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
	if bookmarkFile != "" {
		ir.bookmarks = homepage.NewBookmarksLoader(bookmarkFile)
	}
	if serviceFile != "" {
		ir.services = homepage.NewServicesLoader(serviceFile)
	}
	return ir
}

// Enabled reports whether at least one source file is configured
func (ir *ImportReloader) Enabled() bool {
	return ir.bookmarks != nil || ir.services != nil
}

// Start imports once, then again on every tick or manual trigger until Stop or ctx is done.
// A failed initial import is logged, not returned: imports never stop the app.
func (ir *ImportReloader) Start(ctx context.Context) error {
	if !ir.Enabled() {
		return ErrNoSources
	}
	if ir.interval <= 0 {
		return fmt.Errorf("import interval must be > 0, got %v", ir.interval)
	}

	if _, err := ir.Reload(ctx); err != nil {
		ir.logger.Error("initial import failed", logger.Error(err))
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ir.reloadAndLog(ctx)
			case <-ir.manualTrigger:
				ir.logger.Info("manual import triggered")
				ir.reloadAndLog(ctx)
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. Safe to call more than once.
func (ir *ImportReloader) Stop() {
	ir.stopOnce.Do(func() { close(ir.stopCh) })
}

func (ir *ImportReloader) reloadAndLog(ctx context.Context) {
	if _, err := ir.Reload(ctx); err != nil {
		ir.logger.Error("failed to import links", logger.Error(err))
	}
}

// Reload loads every configured source and imports its links.
// A source that fails to load is reported in the error; the others still import.
func (ir *ImportReloader) Reload(ctx context.Context) (linkstore.ImportResult, error) {
	if !ir.Enabled() {
		return linkstore.ImportResult{}, ErrNoSources
	}

	var (
		candidates []domain.Link
		errs       []error
	)

	if ir.bookmarks != nil {
		links, err := loadBookmarks(ir.bookmarks)
		if err != nil {
			errs = append(errs, err)
		} else {
			ir.logger.Info("loaded bookmarks from homepage",
				logger.String("file", ir.bookmarks.Path()),
				logger.Int("count", len(links)))
			candidates = append(candidates, links...)
		}
	}

	if ir.services != nil {
		links, err := loadServices(ir.services)
		if err != nil {
			errs = append(errs, err)
		} else {
			ir.logger.Info("loaded services from homepage",
				logger.String("file", ir.services.Path()),
				logger.Int("count", len(links)))
			candidates = append(candidates, links...)
		}
	}

	var res linkstore.ImportResult
	if len(candidates) > 0 {
		res = ir.store.Import(ctx, candidates)
	}
	return res, errors.Join(errs...)
}

func loadBookmarks(l *homepage.Loader[homepage.BookmarksConfig]) ([]domain.Link, error) {
	config, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	links, err := homepage.MapBookmarks(config)
	if err != nil {
		return nil, fmt.Errorf("failed to map bookmarks: %w", err)
	}
	return links, nil
}

func loadServices(l *homepage.Loader[homepage.ServicesConfig]) ([]domain.Link, error) {
	config, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	links, err := homepage.MapServices(config)
	if err != nil {
		return nil, fmt.Errorf("failed to map services: %w", err)
	}
	return links, nil
}

// Package app wires configuration, the backend, the link store and the
// HTTP shell together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/linker/internal/config"
	"github.com/MrSnakeDoc/linker/internal/httpserver"
	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/scheduler"
	"github.com/MrSnakeDoc/linker/internal/store"
	"github.com/MrSnakeDoc/linker/internal/utils"
	"github.com/MrSnakeDoc/linker/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	backend store.Backend
	store   *linkstore.Store
}

// New opens the configured backend and loads the store from it.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(ctx, cfg, log, backend), nil
}

// NewWithBackend builds the app on an already opened backend and loads the store.
func NewWithBackend(ctx context.Context, cfg *config.Config, log logger.Logger, backend store.Backend) *App {
	st := linkstore.New(backend, log, linkstore.Options{
		Retry: linkstore.RetryPolicy{
			Retries: cfg.PersistRetries,
			Min:     cfg.PersistRetryMin,
			Max:     cfg.PersistRetryMax,
		},
	})

	loadCtx, cancel := context.WithTimeout(ctx, cfg.OperationTimeout)
	defer cancel()
	st.Load(loadCtx)

	return &App{
		cfg:     cfg,
		logger:  log,
		backend: backend,
		store:   st,
	}
}

func (a *App) Store() *linkstore.Store { return a.store }

func (a *App) Logger() logger.Logger { return a.logger }

// OperationContext bounds one store operation issued from the CLI.
func (a *App) OperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.OperationTimeout)
}

// Importer builds a Homepage importer over the store. Empty paths fall
// back to the configured files.
func (a *App) Importer(bookmarkFile, serviceFile string, trigger chan struct{}) *scheduler.ImportReloader {
	if bookmarkFile == "" && serviceFile == "" {
		bookmarkFile = a.cfg.ImportBookmarksFile
		serviceFile = a.cfg.ImportServicesFile
	}
	return scheduler.NewImportReloader(bookmarkFile, serviceFile, a.store, a.logger, a.cfg.ImportInterval, trigger)
}

// Serve runs the HTTP shell and the periodic importer until ctx is done
// or the server fails, then shuts both down.
func (a *App) Serve(ctx context.Context) error {
	a.logger.Infof("🚀 Starting linker %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	trigger := make(chan struct{}, 1)
	importer := a.Importer("", "", trigger)
	if !importer.Enabled() {
		a.logger.Info("no homepage file configured, import disabled")
		trigger = nil
	}

	server := httpserver.New(a.cfg.ListenPort, deps.Deps{
		Logger:        a.logger,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		Store:         a.store,
		Backend:       a.backend,
		AllowedHosts:  a.cfg.AllowedHosts,
		AllowedCIDRS:  a.cfg.AllowedCIDRS,
		TrustProxy:    a.cfg.TrustProxy,
		RateLimit:     deps.RateLimit{Burst: a.cfg.RateBurst, RefillPerM: a.cfg.RatePerMin},
		ImportTrigger: trigger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	if trigger != nil {
		g.Go(func() error {
			if err := importer.Start(gctx); err != nil {
				return fmt.Errorf("failed to start importer: %w", err)
			}
			a.logger.Info("importer started", logger.Duration("interval", a.cfg.ImportInterval))
			<-gctx.Done()
			importer.Stop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info("✅ linker stopped cleanly")
	return nil
}

// Close releases the backend.
func (a *App) Close() {
	utils.CloseLogged(a.backend, a.logger, string(a.cfg.Backend))
}

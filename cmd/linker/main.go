package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"

	"github.com/MrSnakeDoc/linker/internal/app"
	"github.com/MrSnakeDoc/linker/internal/config"
	"github.com/MrSnakeDoc/linker/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
		open:   openApp,
		browse: browser.OpenURL,
	}

	if err := newRootCmd(c).ExecuteContext(ctx); err != nil {
		printError(c.errOut, "%v", err)
		os.Exit(1)
	}
}

// openApp loads configuration from the environment and opens the store.
func openApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return a, nil
}

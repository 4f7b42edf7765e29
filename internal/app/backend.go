package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/linker/internal/config"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/redis"
	"github.com/MrSnakeDoc/linker/internal/store"
	"github.com/MrSnakeDoc/linker/internal/store/file"
	"github.com/MrSnakeDoc/linker/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/linker/internal/store/redis"
	"github.com/MrSnakeDoc/linker/internal/store/sqlite"
)

// OpenBackend opens the configured key-value medium.
// Failing to open it is a configuration error and aborts the caller.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Backend, error) {
	switch cfg.Backend {
	case store.KindFile:
		b, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening file backend: %w", err)
		}
		log.Debug("file backend opened", logger.String("dir", b.Dir()))
		return b, nil

	case store.KindSQLite:
		b, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		log.Debug("sqlite backend opened", logger.String("dir", cfg.DataDir))
		return b, nil

	case store.KindRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("opening redis backend: %w", err)
		}
		return redisstore.NewBackend(client), nil

	case store.KindMemory:
		log.Warn("memory backend selected, nothing will survive the process")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

package app

import (
	"context"
	"fmt"

	"github.com/five82/holonet/internal/config"
	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/storage"
	"github.com/five82/holonet/internal/storage/file"
	"github.com/five82/holonet/internal/storage/redis"
)

// openStore selects the persistence backend for favourites and history.
func openStore(ctx context.Context, cfg config.Storage, log logger.Logger) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		log.Info("using in-memory storage; favourites will not persist")
		return storage.NewMemory(), nil
	case config.BackendRedis:
		kv, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return kv, nil
	case config.BackendFile, "":
		kv, err := file.Open(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

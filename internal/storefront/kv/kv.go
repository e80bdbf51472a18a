// Package kv provides the durable key-value storage behind the storefront
// session: an in-process map, a SQLite file through GORM, or Redis.
package kv

import (
	"context"
	"fmt"

	"github.com/ergolife/storefront/internal/infrastructure/cache"
	"github.com/ergolife/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Store is a string key-value store
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open builds the store selected by cfg.Store
func Open(ctx context.Context, cfg *config.StorefrontConfig, log *zap.Logger) (Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		s, err := NewSQLiteStore(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		log.Debug("session store opened", zap.String("backend", "sqlite"), zap.String("path", cfg.StorePath))
		return s, nil
	case config.StoreRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Debug("session store opened", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr()))
		return NewRedisStore(client, cfg.RedisPrefix), nil
	}
	return nil, fmt.Errorf("kv: unknown store %q", cfg.Store)
}

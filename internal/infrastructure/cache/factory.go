package cache

import (
	"time"

	"github.com/ergolife/storefront/internal/infrastructure/auth"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// Factory picks Redis-backed stores when a client is available and falls
// back to process-local ones otherwise
type Factory struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewFactory creates a new factory. client may be nil.
func NewFactory(client redis.UniversalClient, opts ...FactoryOption) *Factory {
	f := &Factory{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ProductCache returns the listing cache for the given TTL
func (f *Factory) ProductCache(ttl time.Duration) ProductListCache {
	if ttl <= 0 {
		f.logger.Info("product cache disabled")
		return NopProductCache{}
	}
	if f.client != nil {
		f.logger.Info("using Redis product cache", zap.Duration("ttl", ttl))
		return NewRedisProductCache(f.client, ttl)
	}
	f.logger.Warn("Redis unavailable, using in-memory product cache. " +
		"Listings may be stale across instances until the TTL expires.")
	return NewInMemoryProductCache(ttl)
}

// TokenBlacklist returns the revoked-token store
func (f *Factory) TokenBlacklist() auth.TokenBlacklist {
	if f.client != nil {
		return auth.NewRedisTokenBlacklist(f.client)
	}
	f.logger.Warn("Redis unavailable, using in-memory token blacklist. " +
		"Revoked tokens stay valid on other instances.")
	return auth.NewInMemoryTokenBlacklist()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
)

// ProductListCache caches product listings by filter key
type ProductListCache interface {
	Get(ctx context.Context, key string) ([]catalog.Product, bool, error)
	Set(ctx context.Context, key string, products []catalog.Product) error
	// Invalidate drops every cached listing
	Invalidate(ctx context.Context) error
}

// RedisProductCache stores listings as JSON. Keys embed a version counter;
// invalidation bumps the counter so old entries are never read again and
// expire on their own.
type RedisProductCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisProductCache creates a Redis-backed listing cache
func NewRedisProductCache(client redis.UniversalClient, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{
		client:    client,
		keyPrefix: "catalog:products:",
		ttl:       ttl,
	}
}

func (c *RedisProductCache) versionKey() string {
	return c.keyPrefix + "version"
}

func (c *RedisProductCache) entryKey(ctx context.Context, key string) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%sv%d:%s", c.keyPrefix, version, key), nil
}

// Get returns the cached listing for key
func (c *RedisProductCache) Get(ctx context.Context, key string) ([]catalog.Product, bool, error) {
	entry, err := c.entryKey(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache version: %w", err)
	}
	raw, err := c.client.Get(ctx, entry).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read product cache: %w", err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// Corrupt entry: treat as a miss and let the next Set overwrite it.
		return nil, false, nil
	}
	return products, true, nil
}

// Set stores the listing under key
func (c *RedisProductCache) Set(ctx context.Context, key string, products []catalog.Product) error {
	entry, err := c.entryKey(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read cache version: %w", err)
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entry, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write product cache: %w", err)
	}
	return nil
}

// Invalidate bumps the version so every existing entry becomes unreachable
func (c *RedisProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

var _ ProductListCache = (*RedisProductCache)(nil)

type memoryEntry struct {
	products  []catalog.Product
	expiresAt time.Time
}

// InMemoryProductCache is a process-local listing cache
type InMemoryProductCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryProductCache creates a process-local listing cache
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	return &InMemoryProductCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached listing for key
func (c *InMemoryProductCache) Get(_ context.Context, key string) ([]catalog.Product, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	out := make([]catalog.Product, len(entry.products))
	copy(out, entry.products)
	return out, true, nil
}

// Set stores a copy of the listing under key
func (c *InMemoryProductCache) Set(_ context.Context, key string, products []catalog.Product) error {
	stored := make([]catalog.Product, len(products))
	copy(stored, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{products: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops every cached listing
func (c *InMemoryProductCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}

var _ ProductListCache = (*InMemoryProductCache)(nil)

// NopProductCache never stores anything. Used when the TTL is zero.
type NopProductCache struct{}

func (NopProductCache) Get(context.Context, string) ([]catalog.Product, bool, error) {
	return nil, false, nil
}
func (NopProductCache) Set(context.Context, string, []catalog.Product) error { return nil }
func (NopProductCache) Invalidate(context.Context) error                      { return nil }

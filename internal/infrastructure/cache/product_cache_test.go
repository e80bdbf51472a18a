package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/infrastructure/auth"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []catalog.Product {
	p1, _ := catalog.NewProduct("Ghế ErgoMaster Pro", catalog.CategoryChair, 8500000)
	p1.ID = 1
	p2, _ := catalog.NewProduct("Chuột Vertical", catalog.CategoryAccessory, 950000)
	p2.ID = 5
	return []catalog.Product{*p1, *p2}
}

func TestInMemoryProductCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryProductCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	products := sampleProducts()
	require.NoError(t, c.Set(ctx, "k", products))
	products[0].Name = "mutated"

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ghế ErgoMaster Pro", got[0].Name)

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)

	c.now = func() time.Time { return now }
	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestProductCacheInvalidator(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryProductCache(time.Minute)
	require.NoError(t, c.Set(ctx, "k", sampleProducts()))

	handler := NewProductCacheInvalidator(c, nil)
	assert.ElementsMatch(t, catalog.ProductEventTypes(), handler.EventTypes())

	product := sampleProducts()[0]
	event := catalog.NewProductChangedEvent(catalog.EventTypeProductUpdated, &product)
	require.NoError(t, handler.Handle(ctx, event))

	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
}

type failingCache struct{ NopProductCache }

func (failingCache) Invalidate(context.Context) error { return errors.New("down") }

func TestProductCacheInvalidator_PropagatesError(t *testing.T) {
	handler := NewProductCacheInvalidator(failingCache{}, nil)
	event := shared.NewBaseDomainEvent(catalog.EventTypeProductDeleted, catalog.AggregateTypeProduct, 1)
	assert.Error(t, handler.Handle(context.Background(), &event))
}

func TestFactory(t *testing.T) {
	f := NewFactory(nil)
	assert.IsType(t, NopProductCache{}, f.ProductCache(0))
	assert.IsType(t, &InMemoryProductCache{}, f.ProductCache(time.Minute))
	assert.IsType(t, &auth.InMemoryTokenBlacklist{}, f.TokenBlacklist())

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	withRedis := NewFactory(client)
	assert.IsType(t, &RedisProductCache{}, withRedis.ProductCache(time.Minute))
	assert.IsType(t, &auth.RedisTokenBlacklist{}, withRedis.TokenBlacklist())
}

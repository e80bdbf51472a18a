package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/ergolife/storefront/internal/storefront/kv"
	"github.com/ergolife/storefront/internal/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "wishlist"

func TestSet_ToggleIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := Load(ctx, store, key, nil)

	for _, id := range []model.ID{"1", "3", "b1"} {
		before := s.Contains(id)
		_, err := s.Toggle(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, before, s.Contains(id))
		_, err = s.Toggle(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, s.Contains(id))
	}
}

func TestSet_PersistsEveryToggle(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := Load(ctx, store, key, nil)

	added, err := s.Toggle(ctx, "3")
	require.NoError(t, err)
	assert.True(t, added)
	_, _ = s.Toggle(ctx, "1")

	raw, ok, _ := store.Get(ctx, key)
	require.True(t, ok)
	assert.JSONEq(t, `["1","3"]`, raw)

	reloaded := Load(ctx, store, key, nil)
	assert.Equal(t, []model.ID{"1", "3"}, reloaded.IDs())

	removed, _ := reloaded.Toggle(ctx, "3")
	assert.False(t, removed)
	raw, _, _ = store.Get(ctx, key)
	assert.JSONEq(t, `["1"]`, raw)
}

func TestLoad_MalformedResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, key, `{"1":true`))

	s := Load(ctx, store, key, nil)
	assert.Zero(t, s.Len())
}

func TestLoad_AcceptsNumericIDs(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, key, `[2, "5"]`))

	s := Load(ctx, store, key, nil)
	assert.True(t, s.Contains("2"))
	assert.True(t, s.Contains("5"))
}

type failingStore struct{ *kv.MemoryStore }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestSet_ToggleRollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		s := Load(ctx, failingStore{kv.NewMemoryStore()}, key, nil)

		in, err := s.Toggle(ctx, "1")
		assert.EqualError(t, err, "disk full")
		assert.False(t, in)
		assert.False(t, s.Contains("1"))
		assert.Zero(t, s.Len())
	})

	t.Run("remove", func(t *testing.T) {
		mem := kv.NewMemoryStore()
		require.NoError(t, mem.Set(ctx, key, `["1","2"]`))
		s := Load(ctx, failingStore{mem}, key, nil)

		in, err := s.Toggle(ctx, "1")
		assert.Error(t, err)
		assert.True(t, in)
		assert.Equal(t, []model.ID{"1", "2"}, s.IDs())

		raw, _, err := mem.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `["1","2"]`, raw)
	})
}

package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ergolife/storefront/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add reviews table", "add_reviews_table"},
		{"Add-Voucher-Expiry", "add_voucher_expiry"},
		{"ADD_BLOG_IMAGE", "add_blog_image"},
		{"add__cart__index", "add_cart_index"},
		{"Orders 2024", "orders_2024"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	first, err := CreateMigration(dir, "add wishlist table", now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_wishlist_table.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_wishlist_table.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add wishlist table")
	assert.Contains(t, string(up), "2024-05-01T09:00:00Z")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	second, err := CreateMigration(dir, "Add Voucher Expiry", now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	_, err = CreateMigration(dir, "!!!", now)
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	source := fstest.MapFS{
		"000002_create_catalog.up.sql":   {Data: []byte("")},
		"000002_create_catalog.down.sql": {Data: []byte("")},
		"000001_create_users.up.sql":     {Data: []byte("")},
		"README.md":                      {Data: []byte("")},
		"notes.sql":                      {Data: []byte("")},
		"abc_bad.up.sql":                 {Data: []byte("")},
	}

	entries, err := ListMigrations(source)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Version: 1, Name: "create_users", HasDown: false}, entries[0])
	assert.Equal(t, Entry{Version: 2, Name: "create_catalog", HasDown: true}, entries[1])
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "versions must be contiguous")
		assert.True(t, e.HasDown, "migration %06d_%s has no down file", e.Version, e.Name)
	}
}

// Package wishlist keeps the set of favourite product ids. The set is
// device-wide: it is not tied to the logged-in account.
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/kv"
	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
)

// Set is the wishlist
type Set struct {
	store  kv.Store
	key    string
	logger *zap.Logger

	mu  sync.RWMutex
	ids map[model.ID]struct{}
}

// Load reads the persisted set stored under key. Unreadable or malformed
// data yields an empty set.
func Load(ctx context.Context, store kv.Store, key string, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{store: store, key: key, logger: logger, ids: map[model.ID]struct{}{}}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to read wishlist", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}
	var ids []model.ID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("discarding malformed wishlist", zap.Error(err))
		return s
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds id when absent and removes it when present, then persists
// the whole set. It returns whether id is now in the set. When the write
// fails the change is rolled back, so memory never runs ahead of the store.
func (s *Set) Toggle(ctx context.Context, id model.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present := s.ids[id]
	s.flipLocked(id, present)
	if err := s.persistLocked(ctx); err != nil {
		s.flipLocked(id, !present)
		return present, err
	}
	return !present, nil
}

func (s *Set) flipLocked(id model.ID, present bool) {
	if present {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

func (s *Set) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.sortedLocked())
	if err != nil {
		return fmt.Errorf("wishlist: encode: %w", err)
	}
	return s.store.Set(ctx, s.key, string(raw))
}

func (s *Set) Contains(id model.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the members in ascending order
func (s *Set) IDs() []model.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Set) sortedLocked() []model.ID {
	ids := make([]model.ID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Reset empties the set in memory. The persisted key is removed by the
// session on logout.
func (s *Set) Reset() {
	s.mu.Lock()
	s.ids = map[model.ID]struct{}{}
	s.mu.Unlock()
}

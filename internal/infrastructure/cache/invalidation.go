package cache

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductCacheInvalidator clears cached listings whenever a product changes
type ProductCacheInvalidator struct {
	cache  ProductListCache
	logger *zap.Logger
}

// NewProductCacheInvalidator creates the event handler
func NewProductCacheInvalidator(cache ProductListCache, logger *zap.Logger) *ProductCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCacheInvalidator{cache: cache, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *ProductCacheInvalidator) EventTypes() []string {
	return catalog.ProductEventTypes()
}

// Handle implements shared.EventHandler
func (h *ProductCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("product cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.Uint("product_id", event.AggregateID()),
	)
	return nil
}

var _ shared.EventHandler = (*ProductCacheInvalidator)(nil)

package event

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/ergolife/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// OrderActivityLogger writes an audit line for every order placement and
// status change
type OrderActivityLogger struct {
	logger *zap.Logger
}

// NewOrderActivityLogger creates an OrderActivityLogger
func NewOrderActivityLogger(l *zap.Logger) *OrderActivityLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &OrderActivityLogger{logger: l}
}

// EventTypes implements shared.EventHandler
func (h *OrderActivityLogger) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged}
}

// Handle implements shared.EventHandler
func (h *OrderActivityLogger) Handle(ctx context.Context, event shared.DomainEvent) error {
	log := h.logger.With(logger.ContextFields(ctx)...)
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		log.Info("Order placed",
			zap.Uint("order_id", e.OrderID),
			zap.Uint("user_id", e.UserID),
			zap.Int("items", e.ItemCount),
			zap.Int64("total_amount", e.TotalAmount),
			zap.String("voucher_code", e.VoucherCode),
		)
	case *trade.OrderStatusChangedEvent:
		log.Info("Order status changed",
			zap.Uint("order_id", e.OrderID),
			zap.String("from", string(e.From)),
			zap.String("to", string(e.To)),
		)
	}
	return nil
}

var _ shared.EventHandler = (*OrderActivityLogger)(nil)

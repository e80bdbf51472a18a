package telemetry

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// OrderMetrics records storefront sales metrics from order domain events.
type OrderMetrics struct {
	placed        *Counter
	revenue       *Counter
	discount      *Counter
	orderValue    *Histogram
	statusChanges *Counter
}

// NewOrderMetrics creates the order instruments on meter
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &OrderMetrics{}
	var err error
	if m.placed, err = NewCounter(meter, "storefront_orders_placed_total", "Total number of orders placed", "{orders}"); err != nil {
		return nil, err
	}
	if m.revenue, err = NewCounter(meter, "storefront_order_revenue_total", "Total order amount after discounts", "{VND}"); err != nil {
		return nil, err
	}
	if m.discount, err = NewCounter(meter, "storefront_order_discount_total", "Total voucher discount granted", "{VND}"); err != nil {
		return nil, err
	}
	if m.orderValue, err = NewHistogram(meter, "storefront_order_value", "Distribution of order totals", "{VND}", OrderValueBuckets...); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter, "storefront_order_status_changes_total", "Order status transitions", "{changes}"); err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes implements shared.EventHandler
func (m *OrderMetrics) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged}
}

// Handle implements shared.EventHandler
func (m *OrderMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		hasVoucher := AttrHasVoucher.Bool(e.VoucherCode != "")
		m.placed.Inc(ctx, hasVoucher)
		m.revenue.Add(ctx, e.TotalAmount)
		if e.Discount > 0 {
			m.discount.Add(ctx, e.Discount)
		}
		m.orderValue.Record(ctx, float64(e.TotalAmount), hasVoucher)
	case *trade.OrderStatusChangedEvent:
		m.statusChanges.Inc(ctx,
			AttrFromStatus.String(string(e.From)),
			AttrOrderStatus.String(string(e.To)),
		)
	}
	return nil
}

var _ shared.EventHandler = (*OrderMetrics)(nil)

package telemetry

import (
	"context"
	"testing"

	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumInt(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestOrderMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewOrderMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Handle(ctx, &trade.OrderPlacedEvent{OrderID: 1, TotalAmount: 8_500_000}))
	require.NoError(t, m.Handle(ctx, &trade.OrderPlacedEvent{
		OrderID: 2, Subtotal: 12_500_000, Discount: 500_000, TotalAmount: 12_000_000, VoucherCode: "ERGO500K",
	}))
	require.NoError(t, m.Handle(ctx, &trade.OrderStatusChangedEvent{
		OrderID: 1, From: trade.OrderStatusPending, To: trade.OrderStatusProcessing,
	}))

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumInt(t, data["storefront_orders_placed_total"]))
	assert.Equal(t, int64(20_500_000), sumInt(t, data["storefront_order_revenue_total"]))
	assert.Equal(t, int64(500_000), sumInt(t, data["storefront_order_discount_total"]))
	assert.Equal(t, int64(1), sumInt(t, data["storefront_order_status_changes_total"]))

	hist, ok := data["storefront_order_value"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestOrderMetrics_NilMeter(t *testing.T) {
	_, err := NewOrderMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestOrderMetrics_EventTypes(t *testing.T) {
	m := &OrderMetrics{}
	assert.ElementsMatch(t, []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged}, m.EventTypes())
}

package trade

import (
	"context"
	"testing"
	"time"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	carts     *MockCartRepository
	orders    *MockOrderRepository
	vouchers  *MockVoucherRepository
	publisher *recordingPublisher
	svc       *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		carts:     new(MockCartRepository),
		orders:    new(MockOrderRepository),
		vouchers:  new(MockVoucherRepository),
		publisher: &recordingPublisher{},
	}
	f.svc = NewOrderService(f.carts, f.orders, f.vouchers, f.publisher, nil)
	f.svc.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	chair := testProduct(1, "Chair", 8500000)
	mouse := testProduct(2, "Mouse", 950000)

	t.Run("without voucher", func(t *testing.T) {
		f := newOrderFixture()
		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5, line(chair, 1), line(mouse, 2)), nil)
		f.orders.On("PlaceOrder", ctx, mock.AnythingOfType("*trade.Order"), sameCart(10), (*uint)(nil)).
			Run(func(args mock.Arguments) { args.Get(1).(*trade.Order).ID = 77 }).
			Return(nil)

		resp, err := f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{})
		require.NoError(t, err)
		assert.Equal(t, uint(77), resp.ID)
		assert.Equal(t, int64(10400000), resp.Subtotal)
		assert.Equal(t, int64(10400000), resp.TotalAmount)
		assert.Equal(t, "PENDING", resp.Status)

		require.Len(t, f.publisher.events, 1)
		placed, ok := f.publisher.events[0].(*trade.OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, uint(77), placed.OrderID)
		assert.Equal(t, 3, placed.ItemCount)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newOrderFixture()
		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5), nil)

		_, err := f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{})
		require.ErrorIs(t, err, trade.ErrEmptyCart)
		assert.Equal(t, "Cart is empty", err.Error())
		f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("percentage voucher capped by max discount", func(t *testing.T) {
		f := newOrderFixture()
		voucher, err := marketing.NewVoucher("welcome10", marketing.DiscountPercentage, decimal.NewFromInt(10))
		require.NoError(t, err)
		voucher.ID = 3
		require.NoError(t, voucher.SetLimits(decimal.Zero, decimal.NewFromInt(500000), 0, nil))

		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5, line(chair, 1), line(mouse, 2)), nil)
		f.vouchers.On("FindByCode", ctx, "WELCOME10").Return(voucher, nil)
		f.orders.On("PlaceOrder", ctx, mock.AnythingOfType("*trade.Order"), sameCart(10), mock.MatchedBy(func(id *uint) bool {
			return id != nil && *id == 3
		})).Return(nil)

		resp, err := f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{VoucherCode: " WELCOME10 "})
		require.NoError(t, err)
		assert.Equal(t, int64(500000), resp.Discount)
		assert.Equal(t, int64(9900000), resp.TotalAmount)
		assert.Equal(t, "WELCOME10", resp.VoucherCode)
	})

	t.Run("voucher below minimum order", func(t *testing.T) {
		f := newOrderFixture()
		voucher, err := marketing.NewVoucher("ERGO500K", marketing.DiscountFixed, decimal.NewFromInt(500000))
		require.NoError(t, err)
		require.NoError(t, voucher.SetLimits(decimal.NewFromInt(5000000), decimal.Zero, 100, nil))

		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5, line(mouse, 1)), nil)
		f.vouchers.On("FindByCode", ctx, "ERGO500K").Return(voucher, nil)

		_, err = f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{VoucherCode: "ERGO500K"})
		assert.ErrorIs(t, err, marketing.ErrVoucherMinOrder)
		f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired voucher", func(t *testing.T) {
		f := newOrderFixture()
		voucher, err := marketing.NewVoucher("OLD", marketing.DiscountFixed, decimal.NewFromInt(1000))
		require.NoError(t, err)
		expired := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, voucher.SetLimits(decimal.Zero, decimal.Zero, 0, &expired))

		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5, line(mouse, 1)), nil)
		f.vouchers.On("FindByCode", ctx, "OLD").Return(voucher, nil)

		_, err = f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{VoucherCode: "OLD"})
		assert.ErrorIs(t, err, marketing.ErrVoucherExpired)
	})

	t.Run("unknown voucher", func(t *testing.T) {
		f := newOrderFixture()
		f.carts.On("FindOrCreateByUser", ctx, uint(5)).Return(cartWith(5, line(mouse, 1)), nil)
		f.vouchers.On("FindByCode", ctx, "NOPE").Return(nil, marketing.ErrVoucherNotFound)

		_, err := f.svc.PlaceOrder(ctx, 5, PlaceOrderRequest{VoucherCode: "NOPE"})
		assert.ErrorIs(t, err, marketing.ErrVoucherNotFound)
	})
}

func TestOrderService_ListForUser(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindAll", ctx, mock.MatchedBy(func(filter trade.OrderFilter) bool {
		return filter.UserID != nil && *filter.UserID == 5
	})).Return([]trade.Order{{UserID: 5, Status: trade.OrderStatusPending}}, int64(1), nil)

	page, err := f.svc.ListForUser(ctx, 5, ListOrdersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, uint(5), page.Items[0].UserID)
}

func TestOrderService_GetForUser(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	f.orders.On("FindByIDForUser", ctx, uint(5), uint(8)).Return(nil, shared.ErrNotFound)

	_, err := f.svc.GetForUser(ctx, 5, 8)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition publishes an event", func(t *testing.T) {
		f := newOrderFixture()
		order := &trade.Order{UserID: 5, Status: trade.OrderStatusPending}
		order.ID = 8
		f.orders.On("FindByID", ctx, uint(8)).Return(order, nil)
		f.orders.On("UpdateStatus", ctx, order).Return(nil)

		resp, err := f.svc.UpdateStatus(ctx, 8, UpdateOrderStatusRequest{Status: "PROCESSING"})
		require.NoError(t, err)
		assert.Equal(t, "PROCESSING", resp.Status)
		require.Len(t, f.publisher.events, 1)
		changed := f.publisher.events[0].(*trade.OrderStatusChangedEvent)
		assert.Equal(t, trade.OrderStatusPending, changed.From)
		assert.Equal(t, trade.OrderStatusProcessing, changed.To)
	})

	t.Run("delivered orders are final", func(t *testing.T) {
		f := newOrderFixture()
		order := &trade.Order{Status: trade.OrderStatusDelivered}
		f.orders.On("FindByID", ctx, uint(9)).Return(order, nil)

		_, err := f.svc.UpdateStatus(ctx, 9, UpdateOrderStatusRequest{Status: "CANCELLED"})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}

func sameCart(id uint) any {
	return mock.MatchedBy(func(cart *trade.Cart) bool { return cart.ID == id })
}

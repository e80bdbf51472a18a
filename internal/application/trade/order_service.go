package trade

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/shared/valueobject"
	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/ergolife/storefront/internal/infrastructure/event"
	"go.uber.org/zap"
)

// ErrOrderNotFound is returned for a missing order or one owned by someone else
var ErrOrderNotFound = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")

// OrderService handles checkout and order fulfilment
type OrderService struct {
	cartRepo    trade.CartRepository
	orderRepo   trade.OrderRepository
	voucherRepo marketing.VoucherRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	cartRepo trade.CartRepository,
	orderRepo trade.OrderRepository,
	voucherRepo marketing.VoucherRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		voucherRepo: voucherRepo,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// PlaceOrder turns the user's cart into a pending order, applies at most one
// voucher and clears the ordered lines from the cart
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req PlaceOrderRequest) (*OrderResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, err := trade.NewOrderFromCart(cart)
	if err != nil {
		return nil, err
	}

	var voucherID *uint
	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		voucher, err := s.voucherRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		subtotal := valueobject.NewVND(order.Subtotal)
		if err := voucher.CheckRedeemable(subtotal, s.now()); err != nil {
			return nil, err
		}
		if err := order.ApplyDiscount(voucher.Code, voucher.DiscountFor(subtotal).Int64()); err != nil {
			return nil, err
		}
		voucherID = &voucher.ID
	}

	if err := s.orderRepo.PlaceOrder(ctx, order, cart, voucherID); err != nil {
		s.logger.Error("Failed to place order", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	order.MarkPlaced()
	if err := event.PublishAndClear(ctx, s.publisher, order); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	s.logger.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Int64("total_amount", order.TotalAmount),
		zap.String("voucher_code", order.VoucherCode),
	)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListForUser returns a page of the user's own orders
func (s *OrderService) ListForUser(ctx context.Context, userID uint, query ListOrdersQuery) (*shared.Paginated[OrderResponse], error) {
	return s.list(ctx, query.Filter(&userID))
}

// ListAll returns a page of every order for the back office
func (s *OrderService) ListAll(ctx context.Context, query ListOrdersQuery) (*shared.Paginated[OrderResponse], error) {
	return s.list(ctx, query.Filter(nil))
}

func (s *OrderService) list(ctx context.Context, filter trade.OrderFilter) (*shared.Paginated[OrderResponse], error) {
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetForUser returns one of the user's orders
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves an order along its lifecycle on behalf of staff
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	status, err := trade.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	if err := event.PublishAndClear(ctx, s.publisher, order); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Count returns the number of orders
func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

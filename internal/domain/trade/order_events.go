package trade

import (
	"github.com/ergolife/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is published after an order is persisted and the cart cleared
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uint   `json:"order_id"`
	UserID      uint   `json:"user_id"`
	ItemCount   int    `json:"item_count"`
	Subtotal    int64  `json:"subtotal"`
	Discount    int64  `json:"discount"`
	TotalAmount int64  `json:"total_amount"`
	VoucherCode string `json:"voucher_code,omitempty"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ItemCount:       order.ItemCount(),
		Subtotal:        order.Subtotal,
		Discount:        order.Discount,
		TotalAmount:     order.TotalAmount,
		VoucherCode:     order.VoucherCode,
	}
}

// OrderStatusChangedEvent is published when staff move an order along its lifecycle
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uint        `json:"order_id"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		From:            from,
		To:              order.Status,
	}
}

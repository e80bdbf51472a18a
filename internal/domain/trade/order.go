package trade

import (
	"fmt"
	"strings"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// ParseOrderStatus converts a string into an OrderStatus, case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", s))
	}
	return status, nil
}

// OrderItem is a priced line captured at checkout time
type OrderItem struct {
	shared.BaseEntity
	OrderID     uint   `gorm:"not null;index"`
	ProductID   uint   `gorm:"not null;index"`
	ProductName string `gorm:"type:varchar(200);not null"`
	Image       string `gorm:"type:varchar(500)"`
	Price       int64  `gorm:"not null"`
	Quantity    int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns price times quantity
func (i OrderItem) Amount() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a placed purchase. It is the aggregate root for order items.
type Order struct {
	shared.BaseAggregateRoot
	UserID      uint        `gorm:"not null;index"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal    int64       `gorm:"not null;default:0"`
	Discount    int64       `gorm:"not null;default:0"`
	TotalAmount int64       `gorm:"not null;default:0"`
	VoucherCode string      `gorm:"type:varchar(50)"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart snapshots every cart line into a pending order
func NewOrderFromCart(cart *Cart) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            cart.UserID,
		Items:             make([]OrderItem, 0, len(cart.Items)),
		Status:            OrderStatusPending,
	}
	for _, line := range cart.Items {
		if line.Product.ID == 0 {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %d is no longer available", line.ProductID))
		}
		order.Items = append(order.Items, OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			Image:       line.Product.Image,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
		})
	}
	order.recalculate()
	return order, nil
}

// ApplyDiscount records a voucher discount. The discount is clamped to the subtotal.
func (o *Order) ApplyDiscount(code string, discount int64) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Discounts can only be applied to pending orders")
	}
	if discount < 0 {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount > o.Subtotal {
		discount = o.Subtotal
	}
	o.VoucherCode = code
	o.Discount = discount
	o.recalculate()
	return nil
}

// UpdateStatus moves the order along its lifecycle
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}
	from := o.Status
	o.Status = target
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// MarkPlaced raises the placement event once the order has an ID
func (o *Order) MarkPlaced() {
	o.AddDomainEvent(NewOrderPlacedEvent(o))
}

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

func (o *Order) recalculate() {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.Amount()
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal - o.Discount
}

package trade

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindOrCreateByUser loads the user's cart with product snapshots,
	// creating an empty cart on first access
	FindOrCreateByUser(ctx context.Context, userID uint) (*Cart, error)

	// AddItem adds quantity units of a product to the cart in one statement:
	// a missing line is inserted, an existing line is incremented
	AddItem(ctx context.Context, cartID, productID uint, quantity int) error

	// SaveItem creates or updates a single cart line
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem removes a line owned by the user's cart
	DeleteItem(ctx context.Context, userID, itemID uint) error
}

// OrderFilter narrows an order listing
type OrderFilter struct {
	shared.Filter
	UserID *uint
	Status OrderStatus
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// PlaceOrder atomically persists the order, consumes one use of the
	// voucher (when voucherID is set) and removes the ordered lines from the
	// cart. Lines added to the cart after it was read are left in place.
	PlaceOrder(ctx context.Context, order *Order, cart *Cart, voucherID *uint) error

	// FindByID finds an order by ID with its items
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByIDForUser finds an order by ID only if the user owns it
	FindByIDForUser(ctx context.Context, userID, id uint) (*Order, error)

	// FindAll lists orders matching the filter with the total count
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, order *Order) error

	// Count counts all orders
	Count(ctx context.Context) (int64, error)

	// SumRevenue totals the amount of every order that was not cancelled
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
}

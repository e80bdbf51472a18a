package trade

import (
	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
)

// Cart is the per-user shopping cart. It holds at most one line per product.
type Cart struct {
	shared.BaseEntity
	UserID uint       `gorm:"not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a line in a cart. Product is a read-only snapshot loaded with the cart.
type CartItem struct {
	shared.BaseEntity
	CartID    uint            `gorm:"not null;index;uniqueIndex:idx_cart_product,priority:1"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_cart_product,priority:2"`
	Product   catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// ErrEmptyCart is returned when checking out a cart without lines
var ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Cart is empty")

// NewCart creates an empty cart for the user
func NewCart(userID uint) *Cart {
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Items:      make([]CartItem, 0),
	}
}

// Add adds quantity units of a product. An existing line is incremented;
// otherwise a new line is appended. The returned pointer refers to the
// affected line inside c.Items.
func (c *Cart) Add(productID uint, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].Touch()
			return &c.Items[i], nil
		}
	}
	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	return &c.Items[len(c.Items)-1], nil
}

// Item returns the line with the given id
func (c *Cart) Item(itemID uint) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Remove drops the line with the given id
func (c *Cart) Remove(itemID uint) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Subtotal sums price times quantity over every line. A line whose product
// snapshot is missing contributes zero.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the total number of units in the cart
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SetQuantity replaces the quantity of a line
func (i *CartItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// LineTotal returns the snapshot price times quantity
func (i *CartItem) LineTotal() int64 {
	if i.Product.ID == 0 {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}

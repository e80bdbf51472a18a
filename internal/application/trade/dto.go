package trade

import (
	"time"

	appcatalog "github.com/ergolife/storefront/internal/application/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
)

// AddToCartRequest adds units of a product to the caller's cart
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required,min=1"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// UpdateCartItemRequest replaces the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}

// PlaceOrderRequest is the optional checkout body
type PlaceOrderRequest struct {
	VoucherCode string `json:"voucher_code" binding:"max=50"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// ListOrdersQuery holds the order list query string
type ListOrdersQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a repository filter. userID scopes the
// listing to one customer; nil lists every order.
func (q ListOrdersQuery) Filter(userID *uint) trade.OrderFilter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	return trade.OrderFilter{Filter: f, UserID: userID, Status: trade.OrderStatus(q.Status)}
}

// CartItemResponse is a cart line with its product snapshot
type CartItemResponse struct {
	ID        uint                        `json:"id"`
	ProductID uint                        `json:"product_id"`
	Quantity  int                         `json:"quantity"`
	LineTotal int64                       `json:"line_total"`
	Product   *appcatalog.ProductResponse `json:"product,omitempty"`
}

// CartResponse is the caller's cart as last stored
type CartResponse struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     int64              `json:"total"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *trade.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for i := range c.Items {
		line := &c.Items[i]
		item := CartItemResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		}
		if line.Product.ID != 0 {
			p := appcatalog.ToProductResponse(&line.Product)
			item.Product = &p
		}
		items = append(items, item)
	}
	return CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     c.Subtotal(),
	}
}

// OrderItemResponse is a priced order line
type OrderItemResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uint                `json:"id"`
	UserID      uint                `json:"user_id"`
	Items       []OrderItemResponse `json:"items"`
	Subtotal    int64               `json:"subtotal"`
	Discount    int64               `json:"discount"`
	TotalAmount int64               `json:"total_amount"`
	VoucherCode string              `json:"voucher_code,omitempty"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Image:       item.Image,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Amount:      item.Amount(),
		}
	}
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       items,
		Subtotal:    o.Subtotal,
		Discount:    o.Discount,
		TotalAmount: o.TotalAmount,
		VoucherCode: o.VoucherCode,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

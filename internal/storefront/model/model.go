// Package model holds the storefront's read-through copies of server state.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalogue categories offered by the storefront. The set is open; products
// may carry any category string.
const (
	CategoryAll       = "Tất cả"
	CategoryChair     = "Ghế"
	CategoryDesk      = "Bàn"
	CategoryAccessory = "Phụ kiện"
)

// Categories lists the categories the shop view offers, sentinel first
func Categories() []string {
	return []string{CategoryAll, CategoryChair, CategoryDesk, CategoryAccessory}
}

// Role is the account role returned by the server
type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type Review struct {
	UserID   ID     `json:"user_id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

type Product struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// ProductInput is the editable part of a product
type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
}

// ReviewInput is a review submission
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CartItem is one cart line. Product is the server's snapshot and may be nil.
type CartItem struct {
	ID        ID       `json:"id"`
	ProductID ID       `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// UnitPrice returns the snapshot price, 0 without a snapshot
func (i CartItem) UnitPrice() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price
}

type Cart struct {
	ID     ID         `json:"id"`
	UserID ID         `json:"user_id"`
	Items  []CartItem `json:"items"`
	Total  int64      `json:"total"`
}

type User struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Login is the result of a successful login
type Login struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Registration carries the fields of a new account
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BlogPost struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

// BlogInput is the editable part of a post
type BlogInput struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Published *bool  `json:"published,omitempty"`
}

// Voucher discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Voucher struct {
	ID            ID              `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	UsageLimit    int             `json:"usage_limit"`
	UsedCount     int             `json:"used_count"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	IsActive      bool            `json:"is_active"`
}

// VoucherInput is the editable part of a voucher
type VoucherInput struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	UsageLimit    int             `json:"usage_limit"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

// Order statuses
const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

type OrderItem struct {
	ID          ID     `json:"id"`
	ProductID   ID     `json:"product_id"`
	ProductName string `json:"product_name"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Amount      int64  `json:"amount"`
}

type Order struct {
	ID          ID          `json:"id"`
	UserID      ID          `json:"user_id"`
	Items       []OrderItem `json:"items"`
	Subtotal    int64       `json:"subtotal"`
	Discount    int64       `json:"discount"`
	TotalAmount int64       `json:"total_amount"`
	VoucherCode string      `json:"voucher_code,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UserInput is the admin form for an account. Password may be empty on update.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// DashboardStats are the admin overview counters
type DashboardStats struct {
	Users    int64           `json:"users"`
	Orders   int64           `json:"orders"`
	Products int64           `json:"products"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Upload is the result of an admin image upload
type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

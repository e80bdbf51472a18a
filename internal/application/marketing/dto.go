package marketing

import (
	"time"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VoucherRequest is the admin payload for creating or editing a voucher
type VoucherRequest struct {
	Code          string          `json:"code" binding:"required,min=1,max=50"`
	Description   string          `json:"description" binding:"max=500"`
	DiscountType  string          `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	MaxDiscount   decimal.Decimal `json:"max_discount"`
	UsageLimit    int             `json:"usage_limit" binding:"min=0"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	IsActive      *bool           `json:"is_active"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID            uint            `json:"id"`
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
	CreatedAt     time.Time       `json:"created_at"`
}

// ToVoucherResponse converts a domain Voucher to VoucherResponse
func ToVoucherResponse(v *marketing.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            v.ID,
		Code:          v.Code,
		Description:   v.Description,
		DiscountType:  string(v.DiscountType),
		DiscountValue: v.DiscountValue,
		MinOrderValue: v.MinOrderValue,
		MaxDiscount:   v.MaxDiscount,
		UsageLimit:    v.UsageLimit,
		UsedCount:     v.UsedCount,
		ExpiresAt:     v.ExpiresAt,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt,
	}
}

// BlogRequest is the admin payload for creating or editing a post
type BlogRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=300"`
	Excerpt   string `json:"excerpt" binding:"max=1000"`
	Content   string `json:"content"`
	Author    string `json:"author" binding:"required,min=1,max=100"`
	Image     string `json:"image" binding:"max=500"`
	Published *bool  `json:"published"`
}

// BlogResponse represents a blog post in API responses
type BlogResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Image     string    `json:"image"`
	Published bool      `json:"published"`
	Date      time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBlogResponse converts a domain Blog to BlogResponse
func ToBlogResponse(b *marketing.Blog) BlogResponse {
	return BlogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Author:    b.Author,
		Image:     b.Image,
		Published: b.Published,
		Date:      b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ListQuery holds the pagination query string shared by voucher and blog lists
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a repository filter
func (q ListQuery) Filter() shared.Filter {
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
	f.Search = q.Search
	return f
}

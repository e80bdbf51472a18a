package catalog

import (
	"time"

	"github.com/ergolife/storefront/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Category    string `json:"category" binding:"required,min=1,max=100"`
	Price       int64  `json:"price" binding:"min=0"`
	Description string `json:"description" binding:"max=5000"`
	Image       string `json:"image" binding:"omitempty,max=500"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest replaces the editable fields of a product
type UpdateProductRequest = CreateProductRequest

// AddReviewRequest represents a customer review submission
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// Reviewer identifies the authenticated user writing a review
type Reviewer struct {
	UserID uint
	Name   string
}

// ListProductsQuery holds the catalogue query string
type ListProductsQuery struct {
	Category string `form:"category"`
	MinPrice *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"max_price" binding:"omitempty,min=0"`
	Search   string `form:"search" binding:"max=200"`
	Sort     string `form:"sort" binding:"omitempty,oneof=price_asc price_desc name newest"`
}

// Filter converts the query into a repository filter
func (q ListProductsQuery) Filter() catalog.ProductFilter {
	return catalog.ProductFilter{
		Category: q.Category,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Search:   q.Search,
		Sort:     q.Sort,
	}.Normalized()
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Price       int64            `json:"price"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Stock       int              `json:"stock"`
	Rating      float64          `json:"rating"`
	Reviews     []ReviewResponse `json:"reviews"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	reviews := make([]ReviewResponse, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, ToReviewResponse(r))
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     reviews,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:       r.ID,
		UserID:   r.UserID,
		UserName: r.UserName,
		Rating:   r.Rating,
		Comment:  r.Comment,
		Date:     r.Date,
	}
}

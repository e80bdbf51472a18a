package catalog

import (
	"math"
	"strings"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// CategoryAll is the catalogue sentinel meaning "no category filter"
const CategoryAll = "Tất cả"

// Well-known storefront categories. The set is open; products may carry
// any non-empty category string.
const (
	CategoryChair     = "Ghế"
	CategoryDesk      = "Bàn"
	CategoryAccessory = "Phụ kiện"
)

// Product represents a piece of furniture sold in the storefront.
// It is the aggregate root for reviews.
type Product struct {
	shared.BaseAggregateRoot
	Name        string   `gorm:"type:varchar(200);not null"`
	Category    string   `gorm:"type:varchar(100);not null;index"`
	Price       int64    `gorm:"not null;default:0;index"`
	Description string   `gorm:"type:text"`
	Image       string   `gorm:"type:varchar(500)"`
	Stock       int      `gorm:"not null;default:0"`
	Rating      float64  `gorm:"not null;default:0"`
	Reviews     []Review `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, category string, price int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Category:          strings.TrimSpace(category),
		Price:             price,
		Reviews:           make([]Review, 0),
	}, nil
}

// Update replaces the editable fields of the product
func (p *Product) Update(name, category string, price int64) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Category = strings.TrimSpace(category)
	p.Price = price
	p.Touch()
	return nil
}

// SetDetails sets the descriptive fields
func (p *Product) SetDetails(description, image string, stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Description = description
	p.Image = image
	p.Stock = stock
	p.Touch()
	return nil
}

// AddReview appends a review and recomputes the average rating.
// Reviews are append-only.
func (p *Product) AddReview(review Review) {
	review.ProductID = p.ID
	p.Reviews = append(p.Reviews, review)
	p.Rating = AverageRating(p.Reviews)
	p.Touch()
}

// InStock reports whether the requested quantity can be fulfilled
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// AverageRating returns the mean rating rounded to one decimal place
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if category == CategoryAll {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be the catalogue sentinel")
	}
	return nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}

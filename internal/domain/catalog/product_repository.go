package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Sort keys accepted by the product listing
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	Category string
	MinPrice *int64
	MaxPrice *int64
	Search   string
	Sort     string
}

// Normalized returns a copy with the category sentinel cleared and an
// unknown sort replaced by newest
func (f ProductFilter) Normalized() ProductFilter {
	if f.Category == CategoryAll {
		f.Category = ""
	}
	switch f.Sort {
	case SortPriceAsc, SortPriceDesc, SortName, SortNewest:
	default:
		f.Sort = SortNewest
	}
	return f
}

// CacheKey identifies the listing produced by the normalized filter
func (f ProductFilter) CacheKey() string {
	n := f.Normalized()
	bound := func(v *int64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *v)
	}
	return fmt.Sprintf("c=%s|min=%s|max=%s|q=%s|s=%s",
		n.Category, bound(n.MinPrice), bound(n.MaxPrice),
		strings.ToLower(strings.TrimSpace(n.Search)), n.Sort)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID with its reviews loaded
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindAll lists products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)

	// Save creates or updates a product without touching its reviews
	Save(ctx context.Context, product *Product) error

	// AddReview persists a review together with the product's recomputed rating
	AddReview(ctx context.Context, product *Product, review *Review) error

	// Delete deletes a product and its reviews
	Delete(ctx context.Context, id uint) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}

package catalog

import (
	"github.com/ergolife/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductUpdated  = "ProductUpdated"
	EventTypeProductDeleted  = "ProductDeleted"
	EventTypeProductReviewed = "ProductReviewed"
)

// ProductChangedEvent is published whenever the persisted catalogue changes
type ProductChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
}

// NewProductChangedEvent creates an event of the given type for the product
func NewProductChangedEvent(eventType string, product *Product) *ProductChangedEvent {
	return &ProductChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Category:        product.Category,
		Price:           product.Price,
	}
}

// ProductEventTypes lists every event type that invalidates catalogue reads
func ProductEventTypes() []string {
	return []string{
		EventTypeProductCreated,
		EventTypeProductUpdated,
		EventTypeProductDeleted,
		EventTypeProductReviewed,
	}
}

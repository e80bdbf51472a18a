package catalog

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/infrastructure/event"
	"go.uber.org/zap"
)

// ListCache is the read-through cache for product listings
type ListCache interface {
	Get(ctx context.Context, key string) ([]catalog.Product, bool, error)
	Set(ctx context.Context, key string, products []catalog.Product) error
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       ListCache
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. A nil cache disables
// listing caching and a nil publisher drops events.
func NewProductService(
	productRepo catalog.ProductRepository,
	cache ListCache,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

// List returns the products matching filter. Cache errors degrade to a
// database read.
func (s *ProductService) List(ctx context.Context, filter catalog.ProductFilter) ([]ProductResponse, error) {
	filter = filter.Normalized()
	key := filter.CacheKey()

	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Product cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return ToProductResponses(products), nil
		}
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, products); err != nil {
			s.logger.Warn("Product cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return ToProductResponses(products), nil
}

// GetByID returns a product with its reviews
func (s *ProductService) GetByID(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Category, req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.SetDetails(req.Description, req.Image, req.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, product, catalog.EventTypeProductCreated)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces a product's editable fields
func (s *ProductService) Update(ctx context.Context, id uint, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Category, req.Price); err != nil {
		return nil, err
	}
	if err := product.SetDetails(req.Description, req.Image, req.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, product, catalog.EventTypeProductUpdated)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, product, catalog.EventTypeProductDeleted)
	return nil
}

// AddReview appends a review and returns the product with its new rating
func (s *ProductService) AddReview(ctx context.Context, productID uint, reviewer Reviewer, req AddReviewRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	review, err := catalog.NewReview(reviewer.UserID, reviewer.Name, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	product.AddReview(review)
	stored := &product.Reviews[len(product.Reviews)-1]
	if err := s.productRepo.AddReview(ctx, product, stored); err != nil {
		return nil, err
	}

	s.publish(ctx, product, catalog.EventTypeProductReviewed)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Count returns the number of products
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx)
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product, eventType string) {
	product.AddDomainEvent(catalog.NewProductChangedEvent(eventType, product))
	if err := event.PublishAndClear(ctx, s.publisher, product); err != nil {
		s.logger.Warn("Failed to publish product event",
			zap.String("event_type", eventType),
			zap.Uint("product_id", product.ID),
			zap.Error(err),
		)
	}
}

package trade

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"go.uber.org/zap"
)

var (
	// ErrCartItemNotFound is returned for a line that is not in the caller's cart
	ErrCartItemNotFound = shared.NewDomainError("CART_ITEM_NOT_FOUND", "Cart item not found")
	// ErrProductNotFound is returned when adding a product that does not exist
	ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
)

// CartService handles the per-user shopping cart
type CartService struct {
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo trade.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, logger: logger}
}

// Get returns the user's cart, creating it on first access
func (s *CartService) Get(ctx context.Context, userID uint) (*CartResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// Add adds quantity units of a product. A product already in the cart has its
// line incremented. Quantity defaults to 1.
func (s *CartService) Add(ctx context.Context, userID uint, req AddToCartRequest) (*CartResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := cart.Add(req.ProductID, quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.AddItem(ctx, cart.ID, req.ProductID, quantity); err != nil {
		return nil, err
	}

	s.logger.Debug("Item added to cart",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("added", quantity),
	)
	return s.Get(ctx, userID)
}

// UpdateQuantity replaces the quantity of one of the user's lines
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	line, ok := cart.Item(itemID)
	if !ok {
		return nil, ErrCartItemNotFound
	}
	if err := line.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, line); err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// Remove deletes one of the user's lines
func (s *CartService) Remove(ctx context.Context, userID, itemID uint) (*CartResponse, error) {
	if err := s.cartRepo.DeleteItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

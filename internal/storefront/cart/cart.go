// Package cart mirrors the shopper's server-side cart. The local copy is
// always the last successful fetch; mutations go to the server and are
// followed by a re-fetch.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrAuthRequired is returned without any network call when nobody is logged in
	ErrAuthRequired = errors.New("cart: login required")
	// ErrInvalidQuantity is returned for quantities below one
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
)

// Backend is the cart part of the API gateway
type Backend interface {
	GetCart(ctx context.Context) (*model.Cart, error)
	AddToCart(ctx context.Context, productID model.ID, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, lineID model.ID, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, lineID model.ID) (*model.Cart, error)
	PlaceOrder(ctx context.Context, voucherCode string) (*model.Order, error)
}

// Identity reports whether a shopper is logged in
type Identity interface {
	Authenticated() bool
}

// Aggregate is the local cart
type Aggregate struct {
	backend  Backend
	identity Identity
	logger   *zap.Logger
	inflight singleflight.Group

	mu         sync.RWMutex
	items      []model.CartItem
	generation uint64
}

func New(backend Backend, identity Identity, logger *zap.Logger) *Aggregate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregate{backend: backend, identity: identity, logger: logger}
}

// Refresh replaces the local lines with the server's cart. A fetch that
// finishes after a newer fetch, a checkout or a Clear is discarded.
func (a *Aggregate) Refresh(ctx context.Context) error {
	if !a.identity.Authenticated() {
		return ErrAuthRequired
	}
	gen := a.nextGeneration()

	cart, err := a.backend.GetCart(ctx)
	if err != nil {
		return fmt.Errorf("cart: refresh: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		a.logger.Debug("dropping stale cart fetch", zap.Uint64("generation", gen))
		return nil
	}
	a.items = cart.Items
	return nil
}

func (a *Aggregate) nextGeneration() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	return a.generation
}

// Add puts one unit of product in the cart, incrementing an existing line.
// Concurrent adds of the same product share one request.
func (a *Aggregate) Add(ctx context.Context, product model.Product) error {
	if !a.identity.Authenticated() {
		return ErrAuthRequired
	}
	_, err, shared := a.inflight.Do("add:"+product.ID.String(), func() (any, error) {
		if _, err := a.backend.AddToCart(ctx, product.ID, 1); err != nil {
			return nil, err
		}
		return nil, a.Refresh(ctx)
	})
	if shared {
		a.logger.Debug("collapsed duplicate add", zap.String("product_id", product.ID.String()))
	}
	return err
}

// Remove deletes a line by its server id
func (a *Aggregate) Remove(ctx context.Context, lineID model.ID) error {
	if !a.identity.Authenticated() {
		return ErrAuthRequired
	}
	if _, err := a.backend.RemoveCartItem(ctx, lineID); err != nil {
		return err
	}
	return a.Refresh(ctx)
}

// UpdateQuantity sets a line's quantity
func (a *Aggregate) UpdateQuantity(ctx context.Context, lineID model.ID, quantity int) error {
	if !a.identity.Authenticated() {
		return ErrAuthRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if _, err := a.backend.UpdateCartItem(ctx, lineID, quantity); err != nil {
		return err
	}
	return a.Refresh(ctx)
}

// Checkout places an order for the current server cart. On success the
// local cart is emptied; on failure it is left as it was. Concurrent
// checkouts with the same voucher code share one request.
func (a *Aggregate) Checkout(ctx context.Context, voucherCode string) (*model.Order, error) {
	if !a.identity.Authenticated() {
		return nil, ErrAuthRequired
	}
	v, err, _ := a.inflight.Do("checkout:"+voucherCode, func() (any, error) {
		order, err := a.backend.PlaceOrder(ctx, voucherCode)
		if err != nil {
			return nil, err
		}
		a.Clear()
		return order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Order), nil
}

// Clear empties the local cart and invalidates in-flight fetches
func (a *Aggregate) Clear() {
	a.mu.Lock()
	a.items = nil
	a.generation++
	a.mu.Unlock()
}

// Items returns a copy of the lines
func (a *Aggregate) Items() []model.CartItem {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.items)
}

// Count is the number of units across all lines
func (a *Aggregate) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, it := range a.items {
		n += it.Quantity
	}
	return n
}

// Total sums unit price times quantity. Lines without a product snapshot
// count as zero.
func (a *Aggregate) Total() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Total(a.items)
}

// Total is the fold behind Aggregate.Total
func Total(items []model.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice() * int64(it.Quantity)
	}
	return sum
}

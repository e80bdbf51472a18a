package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/gateway"
	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
)

// ProductSource fetches the catalogue
type ProductSource interface {
	ListProducts(ctx context.Context, q gateway.ProductQuery) ([]model.Product, error)
}

// State holds the loaded product list
type State struct {
	source ProductSource
	logger *zap.Logger

	mu         sync.RWMutex
	products   []model.Product
	fromSeed   bool
	generation uint64
}

// NewState starts out with the seed catalogue so it is never empty
func NewState(source ProductSource, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		source:   source,
		logger:   logger,
		products: SeedProducts(),
		fromSeed: true,
	}
}

// Load replaces the product list with the server's. Any failure installs
// the seed list instead. A load overtaken by a newer one changes nothing.
// It reports whether the result came from the server.
func (s *State) Load(ctx context.Context) bool {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	products, err := s.source.ListProducts(ctx, gateway.ProductQuery{})
	fromSeed := err != nil
	if fromSeed {
		s.logger.Warn("product listing unavailable, using built-in catalogue", zap.Error(err))
		products = SeedProducts()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("dropping superseded product load", zap.Uint64("generation", gen))
		return !fromSeed
	}
	s.products = products
	s.fromSeed = fromSeed
	return !fromSeed
}

// Products returns a copy of the current list
func (s *State) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// FromSeed reports whether the list is the built-in one
func (s *State) FromSeed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fromSeed
}

// Derive applies f to the current list
func (s *State) Derive(f Filter) []model.Product {
	return Derive(s.Products(), f)
}

func (s *State) Find(id model.ID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.products, func(p model.Product) bool { return p.ID == id })
	if i < 0 {
		return model.Product{}, false
	}
	return s.products[i], true
}

// Replace swaps in a fresher copy of a listed product, e.g. after a review
func (s *State) Replace(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.products, func(q model.Product) bool { return q.ID == p.ID }); i >= 0 {
		s.products[i] = p
	}
}

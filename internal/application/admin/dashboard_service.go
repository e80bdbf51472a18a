package admin

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter counts the rows of one collection
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// RevenueSource totals the value of non-cancelled orders
type RevenueSource interface {
	Counter
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
}

// DashboardStats is the back-office summary
type DashboardStats struct {
	Users    int64           `json:"users"`
	Orders   int64           `json:"orders"`
	Products int64           `json:"products"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardService aggregates the back-office summary
type DashboardService struct {
	users    Counter
	products Counter
	orders   RevenueSource
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(users, products Counter, orders RevenueSource, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{users: users, products: products, orders: orders, logger: logger}
}

// Stats runs the four aggregate queries concurrently
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Users, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Products, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders, err = s.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Revenue, err = s.orders.SumRevenue(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to compute dashboard stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}

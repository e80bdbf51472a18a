// Package admin is the back-office console: one panel per resource, each
// fetching and mutating its own collection and re-listing after every
// change. Tab visibility by role is a convenience; the API enforces access.
package admin

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/ergolife/storefront/internal/storefront/gateway"
	"github.com/ergolife/storefront/internal/storefront/model"
	"go.uber.org/zap"
)

// listPageSize is the page requested by every panel
const listPageSize = 100

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabProducts  Tab = "products"
	TabUsers     Tab = "users"
	TabVouchers  Tab = "vouchers"
	TabBlogs     Tab = "blogs"
	TabOrders    Tab = "orders"
)

// Tabs lists every tab in display order
func Tabs() []Tab {
	return []Tab{TabDashboard, TabProducts, TabUsers, TabVouchers, TabBlogs, TabOrders}
}

// VisibleTabs returns the tabs shown to role
func VisibleTabs(role model.Role) []Tab {
	switch role {
	case model.RoleAdmin:
		return Tabs()
	case model.RoleStaff:
		return []Tab{TabOrders}
	}
	return nil
}

// CanSee reports whether role is shown tab
func CanSee(role model.Role, tab Tab) bool {
	return slices.Contains(VisibleTabs(role), tab)
}

// Gateway is the back-office part of the API client
type Gateway interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)

	ListProducts(ctx context.Context, q gateway.ProductQuery) ([]model.Product, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id model.ID, in model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id model.ID) error

	ListUsers(ctx context.Context, q gateway.ListQuery) (*gateway.Page[model.User], error)
	CreateUser(ctx context.Context, in model.UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id model.ID, in model.UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id model.ID) error

	ListVouchers(ctx context.Context, q gateway.ListQuery) (*gateway.Page[model.Voucher], error)
	CreateVoucher(ctx context.Context, in model.VoucherInput) (*model.Voucher, error)
	UpdateVoucher(ctx context.Context, id model.ID, in model.VoucherInput) (*model.Voucher, error)
	DeleteVoucher(ctx context.Context, id model.ID) error

	ListAllBlogs(ctx context.Context, q gateway.ListQuery) (*gateway.Page[model.BlogPost], error)
	CreateBlog(ctx context.Context, in model.BlogInput) (*model.BlogPost, error)
	UpdateBlog(ctx context.Context, id model.ID, in model.BlogInput) (*model.BlogPost, error)
	DeleteBlog(ctx context.Context, id model.ID) error

	ListAllOrders(ctx context.Context, q gateway.ListQuery) (*gateway.Page[model.Order], error)
	UpdateOrderStatus(ctx context.Context, id model.ID, status string) (*model.Order, error)

	UploadImage(ctx context.Context, folder, filename string, content io.Reader) (*model.Upload, error)
}

// Console groups the panels
type Console struct {
	gw     Gateway
	logger *zap.Logger

	Dashboard *DashboardPanel
	Products  *Panel[model.Product, model.ProductInput]
	Users     *Panel[model.User, model.UserInput]
	Vouchers  *Panel[model.Voucher, model.VoucherInput]
	Blogs     *Panel[model.BlogPost, model.BlogInput]
	Orders    *OrdersPanel
}

func NewConsole(gw Gateway, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	page := gateway.ListQuery{Page: 1, PageSize: listPageSize}
	return &Console{
		gw:        gw,
		logger:    logger,
		Dashboard: &DashboardPanel{gw: gw},
		Products: &Panel[model.Product, model.ProductInput]{
			name: TabProducts,
			list: func(ctx context.Context) ([]model.Product, error) {
				return gw.ListProducts(ctx, gateway.ProductQuery{Sort: "newest"})
			},
			create: gw.CreateProduct,
			update: gw.UpdateProduct,
			remove: gw.DeleteProduct,
			logger: logger,
		},
		Users: &Panel[model.User, model.UserInput]{
			name:   TabUsers,
			list:   pageLister(gw.ListUsers, page),
			create: gw.CreateUser,
			update: gw.UpdateUser,
			remove: gw.DeleteUser,
			logger: logger,
		},
		Vouchers: &Panel[model.Voucher, model.VoucherInput]{
			name:   TabVouchers,
			list:   pageLister(gw.ListVouchers, page),
			create: gw.CreateVoucher,
			update: gw.UpdateVoucher,
			remove: gw.DeleteVoucher,
			logger: logger,
		},
		Blogs: &Panel[model.BlogPost, model.BlogInput]{
			name:   TabBlogs,
			list:   pageLister(gw.ListAllBlogs, page),
			create: gw.CreateBlog,
			update: gw.UpdateBlog,
			remove: gw.DeleteBlog,
			logger: logger,
		},
		Orders: &OrdersPanel{gw: gw, logger: logger},
	}
}

// UploadImage stores a product or post image and returns its URL
func (c *Console) UploadImage(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	up, err := c.gw.UploadImage(ctx, folder, filename, content)
	if err != nil {
		return "", err
	}
	c.logger.Info("image uploaded", zap.String("key", up.Key))
	return up.URL, nil
}

func pageLister[T any](
	fetch func(context.Context, gateway.ListQuery) (*gateway.Page[T], error),
	q gateway.ListQuery,
) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		page, err := fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}
}

// Panel is a CRUD table over one resource
type Panel[T, In any] struct {
	name   Tab
	list   func(context.Context) ([]T, error)
	create func(context.Context, In) (*T, error)
	update func(context.Context, model.ID, In) (*T, error)
	remove func(context.Context, model.ID) error
	logger *zap.Logger

	mu    sync.RWMutex
	items []T
}

// Refresh re-lists the collection. On failure the previous rows stay.
func (p *Panel[T, In]) Refresh(ctx context.Context) error {
	items, err := p.list(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

func (p *Panel[T, In]) Items() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.items)
}

func (p *Panel[T, In]) Create(ctx context.Context, in In) (*T, error) {
	created, err := p.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return created, p.relist(ctx)
}

func (p *Panel[T, In]) Update(ctx context.Context, id model.ID, in In) (*T, error) {
	updated, err := p.update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return updated, p.relist(ctx)
}

func (p *Panel[T, In]) Delete(ctx context.Context, id model.ID) error {
	if err := p.remove(ctx, id); err != nil {
		return err
	}
	return p.relist(ctx)
}

func (p *Panel[T, In]) relist(ctx context.Context) error {
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("re-list after mutation failed", zap.String("panel", string(p.name)), zap.Error(err))
		return err
	}
	return nil
}

// DashboardPanel shows the overview counters
type DashboardPanel struct {
	gw Gateway

	mu    sync.RWMutex
	stats model.DashboardStats
}

func (d *DashboardPanel) Refresh(ctx context.Context) error {
	stats, err := d.gw.DashboardStats(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.stats = *stats
	d.mu.Unlock()
	return nil
}

func (d *DashboardPanel) Stats() model.DashboardStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// OrdersPanel lists every order and moves them through their statuses
type OrdersPanel struct {
	gw     Gateway
	logger *zap.Logger

	mu     sync.RWMutex
	status string
	items  []model.Order
}

// Filter restricts the listing to one status; empty shows all
func (o *OrdersPanel) Filter(status string) {
	o.mu.Lock()
	o.status = status
	o.mu.Unlock()
}

func (o *OrdersPanel) Refresh(ctx context.Context) error {
	o.mu.RLock()
	q := gateway.ListQuery{Page: 1, PageSize: listPageSize, Status: o.status}
	o.mu.RUnlock()

	page, err := o.gw.ListAllOrders(ctx, q)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.items = page.Items
	o.mu.Unlock()
	return nil
}

func (o *OrdersPanel) Items() []model.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.items)
}

// SetStatus moves an order to status and re-lists
func (o *OrdersPanel) SetStatus(ctx context.Context, id model.ID, status string) (*model.Order, error) {
	order, err := o.gw.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := o.Refresh(ctx); err != nil {
		o.logger.Warn("re-list after status change failed", zap.Error(err))
		return order, err
	}
	return order, nil
}

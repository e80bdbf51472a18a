package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// PlaceOrder persists the order with its items, consumes one voucher use and
// takes the ordered lines out of the cart in a single transaction
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, order *trade.Order, cart *trade.Cart, voucherID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if voucherID != nil {
			result := tx.Model(&marketing.Voucher{}).
				Where("id = ? AND is_active = ? AND (usage_limit = 0 OR used_count < usage_limit)", *voucherID, true).
				Updates(map[string]any{
					"used_count": gorm.Expr("used_count + 1"),
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return marketing.ErrVoucherExhausted
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return consumeCartItems(tx, cart)
	})
}

// consumeCartItems removes the quantities recorded in the cart snapshot. A
// line that grew since the snapshot keeps the difference.
func consumeCartItems(tx *gorm.DB, cart *trade.Cart) error {
	for _, item := range cart.Items {
		result := tx.Where("id = ? AND cart_id = ? AND quantity <= ?", item.ID, cart.ID, item.Quantity).
			Delete(&trade.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			continue
		}
		err := tx.Model(&trade.CartItem{}).
			Where("id = ? AND cart_id = ?", item.ID, cart.ID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity - ?", item.Quantity),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds an order by ID with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*trade.Order, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUser finds an order by ID only when the user owns it
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, userID, id uint) (*trade.Order, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
}

func (r *GormOrderRepository) first(_ context.Context, query *gorm.DB) (*trade.Order, error) {
	var order trade.Order
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll lists orders matching the filter with the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.Order{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, OrderSortFields))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var orders []trade.Order
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus persists an order's status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{"status": order.Status, "updated_at": order.UpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trade.Order{}).Count(&count).Error
	return count, err
}

// SumRevenue totals every order that was not cancelled
func (r *GormOrderRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("status <> ?", trade.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(sum), nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)

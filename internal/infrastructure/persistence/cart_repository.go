package persistence

import (
	"context"
	"errors"

	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements trade.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindOrCreateByUser loads the user's cart with product snapshots, creating
// an empty one on first access
func (r *GormCartRepository) FindOrCreateByUser(ctx context.Context, userID uint) (*trade.Cart, error) {
	cart, err := r.findByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// Two first requests may race; the unique user_id index keeps one row.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(trade.NewCart(userID)).Error; err != nil {
		return nil, err
	}
	return r.findByUser(ctx, userID)
}

func (r *GormCartRepository) findByUser(ctx context.Context, userID uint) (*trade.Cart, error) {
	var cart trade.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []trade.CartItem{}
	}
	return &cart, nil
}

// AddItem inserts the line or increments it in place, keyed on
// (cart_id, product_id)
func (r *GormCartRepository) AddItem(ctx context.Context, cartID, productID uint, quantity int) error {
	item := trade.CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": item.UpdatedAt,
			}),
		}).
		Create(&item).Error
}

// SaveItem creates or updates a single cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *trade.CartItem) error {
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	if item.ID == 0 {
		return db.Create(item).Error
	}
	return db.Model(&trade.CartItem{}).
		Where("id = ? AND cart_id = ?", item.ID, item.CartID).
		Updates(map[string]any{"quantity": item.Quantity, "updated_at": item.UpdatedAt}).Error
}

// DeleteItem removes a line only when it belongs to the user's cart
func (r *GormCartRepository) DeleteItem(ctx context.Context, userID, itemID uint) error {
	owned := r.db.Model(&trade.Cart{}).Select("id").Where("user_id = ?", userID)
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id IN (?)", itemID, owned).
		Delete(&trade.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.CartRepository = (*GormCartRepository)(nil)

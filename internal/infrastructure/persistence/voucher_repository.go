package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVoucherRepository implements marketing.VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

func (r *GormVoucherRepository) Create(ctx context.Context, voucher *marketing.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *GormVoucherRepository) Update(ctx context.Context, voucher *marketing.Voucher) error {
	result := r.db.WithContext(ctx).Save(voucher)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVoucherRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&marketing.Voucher{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVoucherRepository) FindByID(ctx context.Context, id uint) (*marketing.Voucher, error) {
	var voucher marketing.Voucher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindByCode looks a voucher up by its normalized code
func (r *GormVoucherRepository) FindByCode(ctx context.Context, code string) (*marketing.Voucher, error) {
	var voucher marketing.Voucher
	err := r.db.WithContext(ctx).Where("code = ?", marketing.NormalizeCode(code)).First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, marketing.ErrVoucherNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

func (r *GormVoucherRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.Voucher, int64, error) {
	query := r.db.WithContext(ctx).Model(&marketing.Voucher{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("code LIKE ?", "%"+marketing.NormalizeCode(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, VoucherSortFields))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var vouchers []marketing.Voucher
	if err := query.Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

var _ marketing.VoucherRepository = (*GormVoucherRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBlogRepository implements marketing.BlogRepository using GORM
type GormBlogRepository struct {
	db *gorm.DB
}

// NewGormBlogRepository creates a new GormBlogRepository
func NewGormBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

func (r *GormBlogRepository) Create(ctx context.Context, blog *marketing.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *GormBlogRepository) Update(ctx context.Context, blog *marketing.Blog) error {
	result := r.db.WithContext(ctx).Save(blog)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBlogRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&marketing.Blog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBlogRepository) FindByID(ctx context.Context, id uint) (*marketing.Blog, error) {
	var blog marketing.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// FindAll lists blogs newest first unless the filter asks otherwise
func (r *GormBlogRepository) FindAll(ctx context.Context, filter marketing.BlogFilter) ([]marketing.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&marketing.Blog{})
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, BlogSortFields))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var blogs []marketing.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

var _ marketing.BlogRepository = (*GormBlogRepository)(nil)

package marketing

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// VoucherRepository defines the interface for voucher persistence
type VoucherRepository interface {
	Create(ctx context.Context, voucher *Voucher) error
	Update(ctx context.Context, voucher *Voucher) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Voucher, error)
	// FindByCode looks a voucher up by its normalized code
	FindByCode(ctx context.Context, code string) (*Voucher, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Voucher, int64, error)
}

// BlogFilter narrows a blog listing
type BlogFilter struct {
	shared.Filter
	PublishedOnly bool
}

// BlogRepository defines the interface for blog persistence
type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	Update(ctx context.Context, blog *Blog) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Blog, error)
	FindAll(ctx context.Context, filter BlogFilter) ([]Blog, int64, error)
}

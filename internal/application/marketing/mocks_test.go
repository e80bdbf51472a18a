package marketing

import (
	"context"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockVoucherRepository is a mock implementation of VoucherRepository
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) Create(ctx context.Context, voucher *marketing.Voucher) error {
	return m.Called(ctx, voucher).Error(0)
}

func (m *MockVoucherRepository) Update(ctx context.Context, voucher *marketing.Voucher) error {
	return m.Called(ctx, voucher).Error(0)
}

func (m *MockVoucherRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVoucherRepository) FindByID(ctx context.Context, id uint) (*marketing.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindByCode(ctx context.Context, code string) (*marketing.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.Voucher, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]marketing.Voucher), args.Get(1).(int64), args.Error(2)
}

// MockBlogRepository is a mock implementation of BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *marketing.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *marketing.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id uint) (*marketing.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindAll(ctx context.Context, filter marketing.BlogFilter) ([]marketing.Blog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]marketing.Blog), args.Get(1).(int64), args.Error(2)
}

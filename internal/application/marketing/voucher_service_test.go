package marketing

import (
	"context"
	"testing"

	"github.com/ergolife/storefront/internal/domain/marketing"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validVoucherRequest() VoucherRequest {
	return VoucherRequest{
		Code:          "summer20",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(20),
		MaxDiscount:   decimal.NewFromInt(1000000),
		UsageLimit:    50,
	}
}

func TestVoucherService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the code", func(t *testing.T) {
		repo := new(MockVoucherRepository)
		svc := NewVoucherService(repo, nil)
		repo.On("FindByCode", ctx, "summer20").Return(nil, marketing.ErrVoucherNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*marketing.Voucher")).Return(nil)

		resp, err := svc.Create(ctx, validVoucherRequest())
		require.NoError(t, err)
		assert.Equal(t, "SUMMER20", resp.Code)
		assert.True(t, resp.IsActive)
		assert.Equal(t, 50, resp.UsageLimit)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		repo := new(MockVoucherRepository)
		svc := NewVoucherService(repo, nil)
		existing, _ := marketing.NewVoucher("SUMMER20", marketing.DiscountFixed, decimal.NewFromInt(1))
		existing.ID = 4
		repo.On("FindByCode", ctx, "summer20").Return(existing, nil)

		_, err := svc.Create(ctx, validVoucherRequest())
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rejects percentages above 100", func(t *testing.T) {
		repo := new(MockVoucherRepository)
		svc := NewVoucherService(repo, nil)
		repo.On("FindByCode", ctx, "summer20").Return(nil, marketing.ErrVoucherNotFound)

		req := validVoucherRequest()
		req.DiscountValue = decimal.NewFromInt(150)
		_, err := svc.Create(ctx, req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DISCOUNT", domainErr.Code)
	})
}

func TestVoucherService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVoucherRepository)
	svc := NewVoucherService(repo, nil)

	voucher, _ := marketing.NewVoucher("SUMMER20", marketing.DiscountPercentage, decimal.NewFromInt(20))
	voucher.ID = 4
	voucher.UsedCount = 7
	repo.On("FindByID", ctx, uint(4)).Return(voucher, nil)
	repo.On("FindByCode", ctx, "summer20").Return(voucher, nil)
	repo.On("Update", ctx, voucher).Return(nil)

	inactive := false
	req := validVoucherRequest()
	req.IsActive = &inactive
	resp, err := svc.Update(ctx, 4, req)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, 7, resp.UsedCount)
}

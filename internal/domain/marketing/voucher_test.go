package marketing

import (
	"testing"
	"time"

	"github.com/ergolife/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoucher(t *testing.T) {
	t.Run("normalizes code", func(t *testing.T) {
		v, err := NewVoucher(" sale10 ", DiscountPercentage, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, "SALE10", v.Code)
		assert.True(t, v.IsActive)
		assert.Zero(t, v.UsageLimit)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewVoucher("", DiscountFixed, decimal.NewFromInt(1))
		assert.Error(t, err)
		_, err = NewVoucher("X", DiscountType("bogus"), decimal.NewFromInt(1))
		assert.Error(t, err)
		_, err = NewVoucher("X", DiscountFixed, decimal.Zero)
		assert.Error(t, err)
		_, err = NewVoucher("X", DiscountPercentage, decimal.NewFromInt(101))
		assert.Error(t, err)
	})
}

func TestVoucher_CheckRedeemable(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	subtotal := valueobject.NewVND(1000000)

	newVoucher := func() *Voucher {
		v, err := NewVoucher("SALE", DiscountFixed, decimal.NewFromInt(100000))
		require.NoError(t, err)
		return v
	}

	t.Run("valid voucher", func(t *testing.T) {
		assert.NoError(t, newVoucher().CheckRedeemable(subtotal, now))
	})

	t.Run("inactive", func(t *testing.T) {
		v := newVoucher()
		v.SetActive(false)
		assert.ErrorIs(t, v.CheckRedeemable(subtotal, now), ErrVoucherInactive)
	})

	t.Run("expired", func(t *testing.T) {
		v := newVoucher()
		past := now.Add(-time.Hour)
		require.NoError(t, v.SetLimits(decimal.Zero, decimal.Zero, 0, &past))
		assert.ErrorIs(t, v.CheckRedeemable(subtotal, now), ErrVoucherExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		v := newVoucher()
		require.NoError(t, v.SetLimits(decimal.Zero, decimal.Zero, 2, nil))
		v.UsedCount = 2
		assert.ErrorIs(t, v.CheckRedeemable(subtotal, now), ErrVoucherExhausted)
	})

	t.Run("zero limit means unlimited", func(t *testing.T) {
		v := newVoucher()
		v.UsedCount = 10000
		assert.NoError(t, v.CheckRedeemable(subtotal, now))
	})

	t.Run("below minimum order value", func(t *testing.T) {
		v := newVoucher()
		require.NoError(t, v.SetLimits(decimal.NewFromInt(2000000), decimal.Zero, 0, nil))
		assert.ErrorIs(t, v.CheckRedeemable(subtotal, now), ErrVoucherMinOrder)
	})
}

func TestVoucher_DiscountFor(t *testing.T) {
	tests := []struct {
		name        string
		kind        DiscountType
		value       int64
		maxDiscount int64
		subtotal    int64
		want        int64
	}{
		{"percentage", DiscountPercentage, 10, 0, 8500000, 850000},
		{"percentage capped", DiscountPercentage, 10, 500000, 8500000, 500000},
		{"percentage rounds to whole dong", DiscountPercentage, 15, 0, 950001, 142500},
		{"fixed", DiscountFixed, 200000, 0, 950000, 200000},
		{"fixed never exceeds subtotal", DiscountFixed, 2000000, 0, 950000, 950000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVoucher("X", tt.kind, decimal.NewFromInt(tt.value))
			require.NoError(t, err)
			require.NoError(t, v.SetLimits(decimal.Zero, decimal.NewFromInt(tt.maxDiscount), 0, nil))

			got := v.DiscountFor(valueobject.NewVND(tt.subtotal))
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestBlog(t *testing.T) {
	b, err := NewBlog("Cách thiết lập góc làm việc", "Admin Ergolife")
	require.NoError(t, err)
	assert.False(t, b.Published)

	b.Publish()
	assert.True(t, b.Published)
	b.Unpublish()
	assert.False(t, b.Published)

	assert.Error(t, b.Edit("", "", "", "a", ""))
	assert.Error(t, b.Edit("t", "", "", " ", ""))
	assert.Equal(t, "Cách thiết lập góc làm việc", b.Title)
}

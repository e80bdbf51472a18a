package marketing

import (
	"strings"
	"time"

	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/ergolife/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DiscountType tells how a voucher's value is interpreted
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Voucher errors surfaced at checkout
var (
	ErrVoucherNotFound  = shared.NewDomainError("VOUCHER_NOT_FOUND", "Voucher not found")
	ErrVoucherInactive  = shared.NewDomainError("VOUCHER_INACTIVE", "Voucher is not active")
	ErrVoucherExpired   = shared.NewDomainError("VOUCHER_EXPIRED", "Voucher has expired")
	ErrVoucherExhausted = shared.NewDomainError("VOUCHER_EXHAUSTED", "Voucher usage limit reached")
	ErrVoucherMinOrder  = shared.NewDomainError("VOUCHER_MIN_ORDER", "Order value is below the voucher minimum")
)

// Voucher is a discount code redeemable once per order
type Voucher struct {
	shared.BaseEntity
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description   string          `gorm:"type:varchar(500)"`
	DiscountType  DiscountType    `gorm:"type:varchar(20);not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MinOrderValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MaxDiscount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UsageLimit    int             `gorm:"not null;default:0"`
	UsedCount     int             `gorm:"not null;default:0"`
	ExpiresAt     *time.Time
	IsActive      bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "vouchers"
}

// NormalizeCode upper-cases and trims a voucher code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewVoucher creates an active voucher
func NewVoucher(code string, discountType DiscountType, value decimal.Decimal) (*Voucher, error) {
	v := &Voucher{
		BaseEntity:    shared.NewBaseEntity(),
		MinOrderValue: decimal.Zero,
		MaxDiscount:   decimal.Zero,
		IsActive:      true,
	}
	if err := v.SetTerms(code, discountType, value); err != nil {
		return nil, err
	}
	return v, nil
}

// SetTerms replaces the code and discount definition
func (v *Voucher) SetTerms(code string, discountType DiscountType, value decimal.Decimal) error {
	code = NormalizeCode(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Voucher code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Voucher code cannot exceed 50 characters")
	}
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percentage or fixed")
	}
	if !value.IsPositive() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value must be positive")
	}
	if discountType == DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
	}
	v.Code = code
	v.DiscountType = discountType
	v.DiscountValue = value
	v.Touch()
	return nil
}

// SetLimits replaces the redemption constraints. Zero usage limit means unlimited.
func (v *Voucher) SetLimits(minOrder, maxDiscount decimal.Decimal, usageLimit int, expiresAt *time.Time) error {
	if minOrder.IsNegative() || maxDiscount.IsNegative() {
		return shared.NewDomainError("INVALID_LIMIT", "Voucher limits cannot be negative")
	}
	if usageLimit < 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Usage limit cannot be negative")
	}
	v.MinOrderValue = minOrder
	v.MaxDiscount = maxDiscount
	v.UsageLimit = usageLimit
	v.ExpiresAt = expiresAt
	v.Touch()
	return nil
}

// SetActive toggles whether the voucher can be redeemed
func (v *Voucher) SetActive(active bool) {
	v.IsActive = active
	v.Touch()
}

// CheckRedeemable returns the first reason the voucher cannot be used for
// an order of the given subtotal, or nil
func (v *Voucher) CheckRedeemable(subtotal valueobject.Money, now time.Time) error {
	if !v.IsActive {
		return ErrVoucherInactive
	}
	if v.ExpiresAt != nil && !now.Before(*v.ExpiresAt) {
		return ErrVoucherExpired
	}
	if v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit {
		return ErrVoucherExhausted
	}
	if subtotal.Amount().LessThan(v.MinOrderValue) {
		return ErrVoucherMinOrder
	}
	return nil
}

// DiscountFor computes the discount for the subtotal. Percentage discounts
// are capped by MaxDiscount when it is set; the result never exceeds the subtotal.
func (v *Voucher) DiscountFor(subtotal valueobject.Money) valueobject.Money {
	var discount valueobject.Money
	switch v.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Percent(v.DiscountValue)
		if v.MaxDiscount.IsPositive() {
			discount = discount.Min(valueobject.NewVNDFromDecimal(v.MaxDiscount))
		}
	case DiscountFixed:
		discount = valueobject.NewVNDFromDecimal(v.DiscountValue)
	default:
		return valueobject.ZeroVND()
	}
	return discount.Min(subtotal)
}

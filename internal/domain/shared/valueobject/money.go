package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// VND is the only currency the storefront sells in. It has no minor unit.
const VND Currency = "VND"

// ErrNegativeAmount is returned when a price or total would go below zero
var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money is an immutable VND amount. Arithmetic runs on decimals and every
// result is rounded to a whole dong.
type Money struct {
	amount decimal.Decimal
}

// NewVND creates Money from a whole-dong amount
func NewVND(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// NewVNDFromDecimal creates Money from a decimal, rounding half away from zero
func NewVNDFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(0)}
}

// ZeroVND returns a zero amount
func ZeroVND() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Int64 returns the amount in whole dong
func (m Money) Int64() int64 {
	return m.amount.IntPart()
}

// Currency always returns VND
func (m Money) Currency() Currency {
	return VND
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is below zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns m - other, or an error if the result is negative
func (m Money) Subtract(other Money) (Money, error) {
	r := m.amount.Sub(other.amount)
	if r.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: r}, nil
}

// MultiplyByInt returns m * factor
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// Percent returns pct percent of m, rounded to a whole dong
func (m Money) Percent(pct decimal.Decimal) Money {
	return NewVNDFromDecimal(m.amount.Mul(pct).Div(decimal.NewFromInt(100)))
}

// Min returns the smaller of m and other
func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

// LessThan reports whether m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// String formats the amount with its currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(0), VND)
}

package coupon

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCoupon is returned when the code is unknown or the coupon is switched off.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrCouponExpired is returned when the coupon expiry lies in the past.
	ErrCouponExpired = errors.New("coupon has expired")
	// ErrMinimumNotMet is returned when the order subtotal is below the coupon minimum.
	ErrMinimumNotMet = errors.New("order subtotal below coupon minimum")
)

// Discount types.
const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

var hundred = decimal.NewFromInt(100)

// Rule captures the runtime constraints of a coupon.
type Rule struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	MinOrderValue decimal.Decimal
	MaxDiscount   *decimal.Decimal
	IsValid       bool
	ExpiresAt     *time.Time
}

// Validate checks the rule against the evaluation instant and order subtotal. Checks run in a
// fixed order: validity flag, expiry, then minimum order value.
func (r Rule) Validate(now time.Time, subtotal decimal.Decimal) error {
	if !r.IsValid {
		return ErrInvalidCoupon
	}
	if r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
		return ErrCouponExpired
	}
	if subtotal.LessThan(r.MinOrderValue) {
		return ErrMinimumNotMet
	}
	return nil
}

// Compute returns the discount for subtotal, capped at MaxDiscount when set and at the subtotal.
func Compute(subtotal decimal.Decimal, r Rule) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	var raw decimal.Decimal
	switch r.DiscountType {
	case TypePercentage:
		raw = subtotal.Mul(r.DiscountValue).Div(hundred)
	case TypeFixed:
		raw = r.DiscountValue
	default:
		return decimal.Zero
	}
	discount := raw.Round(2)
	if r.MaxDiscount != nil && r.MaxDiscount.LessThan(discount) {
		discount = *r.MaxDiscount
	}
	if subtotal.LessThan(discount) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	// Caps may carry sub-cent precision; truncating keeps the result within both.
	return discount.RoundDown(2)
}

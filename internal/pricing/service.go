package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/coupon"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

var (
	// ErrValidation is returned when the quote request is malformed.
	ErrValidation = errors.New("invalid quote request")
	// ErrVariantNotFound is returned when a line item references an unknown variant.
	ErrVariantNotFound = errors.New("product variant not found")
)

// CouponApplier evaluates a coupon code against a subtotal.
type CouponApplier interface {
	Apply(ctx context.Context, code string, subtotal decimal.Decimal) (coupon.Result, error)
}

// ShippingResolver resolves the shipping cost of an order.
type ShippingResolver interface {
	Resolve(ctx context.Context, area string, weightGrams, subtotal decimal.Decimal) (shipping.Quote, error)
}

// VariantLookup loads product variants for line-item quotes.
type VariantLookup interface {
	GetProductVariant(ctx context.Context, id int64) (dbgen.ProductVariant, error)
}

// LineItem references a variant and quantity.
type LineItem struct {
	VariantID int64
	Qty       int
}

// QuoteInput describes an order to price. When Items is non-empty the subtotal and weight are
// derived from the variants and the explicit values are ignored.
type QuoteInput struct {
	Area        string
	WeightGrams decimal.Decimal
	Subtotal    decimal.Decimal
	CouponCode  string
	Items       []LineItem
}

// CouponError reports why a coupon was not applied.
type CouponError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Quote is a fully priced order.
type Quote struct {
	Summary
	WeightGrams   decimal.Decimal `json:"weightGrams"`
	Currency      string          `json:"currency"`
	ShippingQuote shipping.Quote  `json:"shippingQuote"`
	Coupon        *coupon.Summary `json:"coupon"`
	CouponError   *CouponError    `json:"couponError"`
}

// Service composes coupon evaluation and shipping resolution into order quotes.
type Service struct {
	Coupons  CouponApplier
	Shipping ShippingResolver
	Variants VariantLookup
	Currency string
}

// Quote prices an order. Coupon rejections are reported on the quote; shipping failures fail it.
// The free-shipping threshold is evaluated against the pre-discount subtotal.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (Quote, error) {
	subtotal, weight := in.Subtotal, in.WeightGrams
	if len(in.Items) > 0 {
		items, err := s.resolveItems(ctx, in.Items)
		if err != nil {
			return Quote{}, err
		}
		subtotal, weight = Subtotal(items), Weight(items)
	}
	if subtotal.IsNegative() || weight.IsNegative() {
		return Quote{}, fmt.Errorf("%w: subtotal and weight must be >= 0", ErrValidation)
	}

	quote := Quote{WeightGrams: weight, Currency: s.Currency}
	discount := decimal.Zero
	if in.CouponCode != "" && s.Coupons != nil {
		result, err := s.Coupons.Apply(ctx, in.CouponCode, subtotal)
		switch code, rejected := coupon.ErrorCode(err); {
		case err == nil:
			discount = result.DiscountAmount
			summary := result.Coupon
			quote.Coupon = &summary
		case rejected:
			quote.CouponError = &CouponError{Code: code, Message: err.Error()}
		default:
			return Quote{}, err
		}
	}

	shipQuote, err := s.Shipping.Resolve(ctx, in.Area, weight, subtotal)
	if err != nil {
		return Quote{}, err
	}
	quote.ShippingQuote = shipQuote
	quote.Summary = Compute(subtotal, discount, shipQuote.Cost)
	return quote, nil
}

func (s *Service) resolveItems(ctx context.Context, lines []LineItem) ([]Item, error) {
	if s.Variants == nil {
		return nil, fmt.Errorf("%w: line items are not supported", ErrValidation)
	}
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		variant, err := s.Variants.GetProductVariant(ctx, line.VariantID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: %d", ErrVariantNotFound, line.VariantID)
			}
			return nil, err
		}
		items = append(items, Item{Qty: line.Qty, UnitPrice: variant.Price, WeightGrams: variant.WeightGrams})
	}
	return items, nil
}

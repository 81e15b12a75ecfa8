package pricing_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kitabghor/storefront-api/internal/coupon"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/pricing"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type stubCoupons struct {
	result coupon.Result
	err    error
}

func (s stubCoupons) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (coupon.Result, error) {
	return s.result, s.err
}

type stubShipping struct {
	gotSubtotal decimal.Decimal
	gotWeight   decimal.Decimal
	err         error
}

func (s *stubShipping) Resolve(ctx context.Context, area string, weight, subtotal decimal.Decimal) (shipping.Quote, error) {
	s.gotSubtotal, s.gotWeight = subtotal, weight
	if s.err != nil {
		return shipping.Quote{}, s.err
	}
	id := int64(1)
	if subtotal.GreaterThanOrEqual(dec("500")) {
		return shipping.Quote{Cost: decimal.Zero, MatchedRateID: &id, FreeApplied: true, Source: shipping.SourceRate}, nil
	}
	return shipping.Quote{Cost: dec("60"), MatchedRateID: &id, Source: shipping.SourceRate}, nil
}

type stubVariants map[int64]dbgen.ProductVariant

func (s stubVariants) GetProductVariant(ctx context.Context, id int64) (dbgen.ProductVariant, error) {
	v, ok := s[id]
	if !ok {
		return dbgen.ProductVariant{}, pgx.ErrNoRows
	}
	return v, nil
}

func TestQuoteAppliesCouponAndFreeShippingOnPreDiscountSubtotal(t *testing.T) {
	ship := &stubShipping{}
	svc := &pricing.Service{
		Coupons: stubCoupons{result: coupon.Result{
			DiscountAmount: dec("100"),
			Coupon:         coupon.Summary{Code: "BOIMELA10", DiscountAmount: dec("100"), DiscountType: "percentage", DiscountValue: dec("10")},
		}},
		Shipping: ship,
		Currency: "BDT",
	}

	quote, err := svc.Quote(context.Background(), pricing.QuoteInput{Area: "Dhaka", WeightGrams: dec("800"), Subtotal: dec("550"), CouponCode: "BOIMELA10"})
	require.NoError(t, err)
	require.True(t, ship.gotSubtotal.Equal(dec("550")))
	require.True(t, quote.ShippingQuote.FreeApplied)
	require.True(t, quote.Discount.Equal(dec("100")))
	require.True(t, quote.Total.Equal(dec("450")))
	require.NotNil(t, quote.Coupon)
	require.Nil(t, quote.CouponError)
}

func TestQuoteReportsCouponRejectionWithoutFailing(t *testing.T) {
	svc := &pricing.Service{
		Coupons:  stubCoupons{err: coupon.ErrCouponExpired},
		Shipping: &stubShipping{},
	}

	quote, err := svc.Quote(context.Background(), pricing.QuoteInput{Area: "Dhaka", WeightGrams: dec("800"), Subtotal: dec("200"), CouponCode: "OLD"})
	require.NoError(t, err)
	require.Nil(t, quote.Coupon)
	require.NotNil(t, quote.CouponError)
	require.Equal(t, "COUPON_EXPIRED", quote.CouponError.Code)
	require.True(t, quote.Total.Equal(dec("260")))
}

func TestQuoteFailsWhenShippingFails(t *testing.T) {
	svc := &pricing.Service{Shipping: &stubShipping{err: shipping.ErrNoRateAvailable}}
	_, err := svc.Quote(context.Background(), pricing.QuoteInput{Area: "Nowhere", Subtotal: dec("10")})
	require.ErrorIs(t, err, shipping.ErrNoRateAvailable)
}

func TestQuoteFailsOnUnexpectedCouponError(t *testing.T) {
	boom := errors.New("db down")
	svc := &pricing.Service{Coupons: stubCoupons{err: boom}, Shipping: &stubShipping{}}
	_, err := svc.Quote(context.Background(), pricing.QuoteInput{Area: "Dhaka", Subtotal: dec("10"), CouponCode: "X"})
	require.ErrorIs(t, err, boom)
}

func TestQuoteDerivesTotalsFromItems(t *testing.T) {
	ship := &stubShipping{}
	svc := &pricing.Service{
		Shipping: ship,
		Variants: stubVariants{
			5: {ID: 5, Price: dec("180"), WeightGrams: 350},
			6: {ID: 6, Price: dec("95.50"), WeightGrams: 200},
		},
	}
	quote, err := svc.Quote(context.Background(), pricing.QuoteInput{
		Area:  "Dhaka",
		Items: []pricing.LineItem{{VariantID: 5, Qty: 2}, {VariantID: 6, Qty: 1}},
	})
	require.NoError(t, err)
	require.True(t, quote.Subtotal.Equal(dec("455.5")))
	require.True(t, quote.WeightGrams.Equal(dec("900")))
	require.True(t, ship.gotWeight.Equal(dec("900")))
	require.True(t, quote.Total.Equal(dec("515.5")))

	_, err = svc.Quote(context.Background(), pricing.QuoteInput{Area: "Dhaka", Items: []pricing.LineItem{{VariantID: 99, Qty: 1}}})
	require.ErrorIs(t, err, pricing.ErrVariantNotFound)
}

func TestQuoteHandler(t *testing.T) {
	h := &pricing.Handler{
		Svc:    &pricing.Service{Coupons: stubCoupons{err: coupon.ErrInvalidCoupon}, Shipping: &stubShipping{}, Currency: "BDT"},
		Logger: zerolog.Nop(),
	}
	body := `{"area":"Dhaka","weightGrams":500,"subtotal":300,"couponCode":"NOPE"}`
	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodPost, "/api/pricing/quote", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Total       decimal.Decimal      `json:"total"`
			Currency    string               `json:"currency"`
			CouponError *pricing.CouponError `json:"couponError"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Data.Total.Equal(dec("360")))
	require.Equal(t, "BDT", resp.Data.Currency)
	require.Equal(t, "INVALID_COUPON", resp.Data.CouponError.Code)
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestComputeClampsDiscount(t *testing.T) {
	summary := Compute(dec("300"), dec("500"), dec("60"))
	require.True(t, summary.Discount.Equal(dec("300")))
	require.True(t, summary.Total.Equal(dec("60")))
}

func TestComputeTotals(t *testing.T) {
	summary := Compute(dec("2000"), dec("100"), dec("0"))
	require.True(t, summary.Total.Equal(dec("1900")))
	require.True(t, summary.Shipping.IsZero())
}

func TestSubtotalAndWeight(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: dec("350.50"), WeightGrams: 400},
		{Qty: 1, UnitPrice: dec("120"), WeightGrams: 250},
		{Qty: 0, UnitPrice: dec("999"), WeightGrams: 999},
	}
	require.True(t, Subtotal(items).Equal(dec("821")))
	require.True(t, Weight(items).Equal(dec("1050")))
}

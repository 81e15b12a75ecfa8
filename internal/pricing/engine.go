package pricing

import "github.com/shopspring/decimal"

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty         int
	UnitPrice   decimal.Decimal
	WeightGrams int32
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums line totals, skipping non-positive quantities.
func Subtotal(items []Item) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return subtotal
}

// Weight sums the shipping weight of the items in grams.
func Weight(items []Item) decimal.Decimal {
	var grams int64
	for _, it := range items {
		if it.Qty <= 0 || it.WeightGrams <= 0 {
			continue
		}
		grams += int64(it.Qty) * int64(it.WeightGrams)
	}
	return decimal.NewFromInt(grams)
}

// Compute calculates order totals. The discount is clamped to the subtotal.
func Compute(subtotal, discount, shipping decimal.Decimal) Summary {
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}

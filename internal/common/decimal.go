package common

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNonFinite is returned when a numeric input is NaN or infinite.
var ErrNonFinite = errors.New("value must be a finite number")

// ParseDecimal parses a query-string style numeric value. Blank input yields fallback.
func ParseDecimal(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err == nil {
		return d, nil
	}
	// NewFromString rejects "NaN"/"Inf" spellings with a generic error; report them precisely.
	switch strings.ToLower(strings.TrimLeft(trimmed, "+-")) {
	case "nan", "inf", "infinity":
		return decimal.Zero, ErrNonFinite
	}
	return decimal.Zero, err
}

// NullDecimal wraps an optional decimal pointer for sqlc parameters.
func NullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

// DecimalPtr unwraps a nullable decimal into a pointer suitable for JSON responses.
func DecimalPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

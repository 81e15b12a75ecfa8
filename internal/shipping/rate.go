package shipping

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

// Slab is a weight range, in grams, with a flat shipping cost. A nil MaxWeight is open ended.
type Slab struct {
	MinWeight decimal.Decimal  `json:"minWeight"`
	MaxWeight *decimal.Decimal `json:"maxWeight"`
	Cost      decimal.Decimal  `json:"cost"`
}

// Matches reports whether weight falls inside the slab bounds (both inclusive).
func (s Slab) Matches(weight decimal.Decimal) bool {
	if weight.LessThan(s.MinWeight) {
		return false
	}
	return s.MaxWeight == nil || weight.LessThanOrEqual(*s.MaxWeight)
}

// Rate is a shipping rate for one destination area.
type Rate struct {
	ID           int64            `json:"id"`
	Country      string           `json:"country"`
	Area         string           `json:"area"`
	BaseCost     decimal.Decimal  `json:"baseCost"`
	WeightSlabs  []Slab           `json:"weightSlabs"`
	FreeMinOrder *decimal.Decimal `json:"freeMinOrder"`
	IsActive     bool             `json:"isActive"`
	Priority     int32            `json:"priority"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Cost computes the shipping cost of an order against the rate. The free-shipping threshold wins,
// then the first slab in stored order that contains the weight, then the base cost.
func (r Rate) Cost(weight, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	if r.FreeMinOrder != nil && subtotal.GreaterThanOrEqual(*r.FreeMinOrder) {
		return decimal.Zero, true
	}
	for _, slab := range r.WeightSlabs {
		if slab.Matches(weight) {
			return slab.Cost, false
		}
	}
	return r.BaseCost, false
}

// SelectRate picks the rate with the lowest priority value, breaking ties by the lowest id.
func SelectRate(rates []Rate) (Rate, bool) {
	if len(rates) == 0 {
		return Rate{}, false
	}
	best := rates[0]
	for _, candidate := range rates[1:] {
		if candidate.Priority < best.Priority || (candidate.Priority == best.Priority && candidate.ID < best.ID) {
			best = candidate
		}
	}
	return best, true
}

// ValidateSlabs checks every slab for internal consistency.
func ValidateSlabs(slabs []Slab) error {
	for i, slab := range slabs {
		if slab.MinWeight.IsNegative() {
			return fmt.Errorf("%w: slab %d minWeight must be >= 0", ErrInvalidSlabs, i)
		}
		if slab.MaxWeight != nil && !slab.MaxWeight.GreaterThan(slab.MinWeight) {
			return fmt.Errorf("%w: slab %d maxWeight must be greater than minWeight", ErrInvalidSlabs, i)
		}
		if slab.Cost.IsNegative() {
			return fmt.Errorf("%w: slab %d cost must be >= 0", ErrInvalidSlabs, i)
		}
	}
	return nil
}

// Validate enforces the rate-level invariants used by admin writes.
func (r Rate) Validate() error {
	if strings.TrimSpace(r.Area) == "" {
		return fmt.Errorf("%w: area is required", ErrValidation)
	}
	if r.BaseCost.IsNegative() {
		return fmt.Errorf("%w: baseCost must be >= 0", ErrValidation)
	}
	if r.FreeMinOrder != nil && r.FreeMinOrder.IsNegative() {
		return fmt.Errorf("%w: freeMinOrder must be >= 0", ErrValidation)
	}
	if err := ValidateSlabs(r.WeightSlabs); err != nil {
		return err
	}
	if !r.BaseCost.IsPositive() && len(r.WeightSlabs) == 0 {
		return fmt.Errorf("%w: baseCost must be positive when no weight slabs are configured", ErrValidation)
	}
	return nil
}

func encodeSlabs(slabs []Slab) ([]byte, error) {
	if len(slabs) == 0 {
		return nil, nil
	}
	return json.Marshal(slabs)
}

func decodeSlabs(raw []byte) ([]Slab, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var slabs []Slab
	if err := json.Unmarshal(raw, &slabs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlabs, err)
	}
	return slabs, nil
}

func rateFromRow(row dbgen.ShippingRate) (Rate, error) {
	slabs, err := decodeSlabs(row.WeightSlabs)
	if err != nil {
		return Rate{}, fmt.Errorf("shipping rate %d: %w", row.ID, err)
	}
	rate := Rate{
		ID:           row.ID,
		Country:      row.Country,
		Area:         row.Area,
		BaseCost:     row.BaseCost,
		WeightSlabs:  slabs,
		IsActive:     row.IsActive,
		Priority:     row.Priority,
		FreeMinOrder: common.DecimalPtr(row.FreeMinOrder),
	}
	if row.CreatedAt.Valid {
		rate.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		rate.UpdatedAt = row.UpdatedAt.Time
	}
	return rate, nil
}

func ratesFromRows(rows []dbgen.ShippingRate) ([]Rate, error) {
	rates := make([]Rate, 0, len(rows))
	for _, row := range rows {
		rate, err := rateFromRow(row)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

package shipping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/obs"
)

var (
	// ErrValidation is returned when resolver or admin input is malformed or out of range.
	ErrValidation = errors.New("invalid shipping input")
	// ErrNoRateAvailable is returned when no active rate matches and no default rate is configured.
	ErrNoRateAvailable = errors.New("no shipping rate available")
	// ErrRateNotFound is returned when a shipping rate id does not exist.
	ErrRateNotFound = errors.New("shipping rate not found")
	// ErrInvalidSlabs is returned when weight slabs are inconsistent.
	ErrInvalidSlabs = errors.New("invalid weight slabs")
)

// Quote sources.
const (
	SourceRate    = "rate"
	SourceDefault = "default"
)

// Querier is the subset of generated queries used by the shipping service.
type Querier interface {
	ListActiveShippingRatesByArea(ctx context.Context, area string) ([]dbgen.ShippingRate, error)
	ListShippingRates(ctx context.Context) ([]dbgen.ShippingRate, error)
	GetShippingRate(ctx context.Context, id int64) (dbgen.ShippingRate, error)
	CreateShippingRate(ctx context.Context, arg dbgen.CreateShippingRateParams) (dbgen.ShippingRate, error)
	UpdateShippingRate(ctx context.Context, arg dbgen.UpdateShippingRateParams) (dbgen.ShippingRate, error)
	DeleteShippingRate(ctx context.Context, id int64) (dbgen.ShippingRate, error)
}

// Quote is the outcome of resolving the shipping cost of an order.
type Quote struct {
	Cost          decimal.Decimal `json:"cost"`
	MatchedRateID *int64          `json:"matchedRateId"`
	FreeApplied   bool            `json:"freeApplied"`
	Source        string          `json:"source"`
}

// ServiceConfig configures the shipping service.
type ServiceConfig struct {
	Queries     Querier
	Cache       *RateCache
	Country     string
	DefaultRate *decimal.Decimal
	Logger      zerolog.Logger
}

// Service resolves shipping costs and manages shipping rates.
type Service struct {
	q           Querier
	cache       *RateCache
	country     string
	defaultRate *decimal.Decimal
	logger      zerolog.Logger
}

// NewService constructs a shipping service.
func NewService(cfg ServiceConfig) *Service {
	country := strings.ToUpper(strings.TrimSpace(cfg.Country))
	if country == "" {
		country = "BD"
	}
	return &Service{
		q:           cfg.Queries,
		cache:       cfg.Cache,
		country:     country,
		defaultRate: cfg.DefaultRate,
		logger:      cfg.Logger,
	}
}

// Resolve computes the shipping cost for an order headed to area.
func (s *Service) Resolve(ctx context.Context, area string, weightGrams, subtotal decimal.Decimal) (Quote, error) {
	area = strings.TrimSpace(area)
	switch {
	case area == "":
		obs.ObserveShippingQuote("invalid")
		return Quote{}, fmt.Errorf("%w: area is required", ErrValidation)
	case weightGrams.IsNegative():
		obs.ObserveShippingQuote("invalid")
		return Quote{}, fmt.Errorf("%w: weight must be >= 0", ErrValidation)
	case subtotal.IsNegative():
		obs.ObserveShippingQuote("invalid")
		return Quote{}, fmt.Errorf("%w: subtotal must be >= 0", ErrValidation)
	}

	rates, err := s.activeRates(ctx, area)
	if err != nil {
		obs.ObserveShippingQuote("error")
		return Quote{}, err
	}
	rate, ok := SelectRate(rates)
	if !ok {
		if s.defaultRate == nil {
			obs.ObserveShippingQuote("no_rate")
			return Quote{}, ErrNoRateAvailable
		}
		obs.ObserveShippingQuote("default")
		return Quote{Cost: *s.defaultRate, Source: SourceDefault}, nil
	}

	cost, free := rate.Cost(weightGrams, subtotal)
	id := rate.ID
	if free {
		obs.ObserveShippingQuote("free")
	} else {
		obs.ObserveShippingQuote("rate")
	}
	return Quote{Cost: cost, MatchedRateID: &id, FreeApplied: free, Source: SourceRate}, nil
}

func (s *Service) activeRates(ctx context.Context, area string) ([]Rate, error) {
	if cached, ok, err := s.cache.Get(ctx, area); err != nil {
		s.logger.Warn().Err(err).Str("area", area).Msg("shipping rate cache read failed")
	} else if ok {
		return cached, nil
	}
	// Captured before the database read so an admin write landing in between voids the fill.
	gen, genErr := s.cache.Generation(ctx, area)
	if genErr != nil {
		s.logger.Warn().Err(genErr).Str("area", area).Msg("shipping rate cache generation read failed")
	}
	rows, err := s.q.ListActiveShippingRatesByArea(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("list shipping rates: %w", err)
	}
	rates, err := ratesFromRows(rows)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return rates, nil
	}
	stored, err := s.cache.SetIfCurrent(ctx, area, gen, rates)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("area", area).Msg("shipping rate cache write failed")
	case !stored:
		s.logger.Debug().Str("area", area).Msg("shipping rate cache fill skipped after concurrent write")
	}
	return rates, nil
}

// List returns every shipping rate ordered by area, priority and id.
func (s *Service) List(ctx context.Context) ([]Rate, error) {
	rows, err := s.q.ListShippingRates(ctx)
	if err != nil {
		return nil, err
	}
	return ratesFromRows(rows)
}

// Get returns a single shipping rate.
func (s *Service) Get(ctx context.Context, id int64) (Rate, error) {
	row, err := s.q.GetShippingRate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rate{}, ErrRateNotFound
		}
		return Rate{}, err
	}
	return rateFromRow(row)
}

// RateInput carries the fields of a new shipping rate.
type RateInput struct {
	Country      string
	Area         string
	BaseCost     decimal.Decimal
	WeightSlabs  []Slab
	FreeMinOrder *decimal.Decimal
	IsActive     bool
	Priority     int32
}

// Create validates and stores a new shipping rate.
func (s *Service) Create(ctx context.Context, in RateInput) (Rate, error) {
	rate := Rate{
		Country:      in.Country,
		Area:         strings.TrimSpace(in.Area),
		BaseCost:     in.BaseCost,
		WeightSlabs:  in.WeightSlabs,
		FreeMinOrder: in.FreeMinOrder,
		IsActive:     in.IsActive,
		Priority:     in.Priority,
	}
	if err := s.normaliseCountry(&rate); err != nil {
		return Rate{}, err
	}
	if err := rate.Validate(); err != nil {
		return Rate{}, err
	}
	slabs, err := encodeSlabs(rate.WeightSlabs)
	if err != nil {
		return Rate{}, err
	}
	row, err := s.q.CreateShippingRate(ctx, dbgen.CreateShippingRateParams{
		Country:      rate.Country,
		Area:         rate.Area,
		BaseCost:     rate.BaseCost,
		WeightSlabs:  slabs,
		FreeMinOrder: common.NullDecimal(rate.FreeMinOrder),
		IsActive:     rate.IsActive,
		Priority:     rate.Priority,
	})
	if err != nil {
		return Rate{}, err
	}
	s.invalidate(ctx, row.Area)
	s.logger.Info().Int64("rate_id", row.ID).Str("area", row.Area).Msg("shipping rate created")
	return rateFromRow(row)
}

// RatePatch carries a partial update. Nil fields are left untouched; the Clear flags null out
// optional columns.
type RatePatch struct {
	Country           *string
	Area              *string
	BaseCost          *decimal.Decimal
	WeightSlabs       []Slab
	SetWeightSlabs    bool
	FreeMinOrder      *decimal.Decimal
	ClearFreeMinOrder bool
	IsActive          *bool
	Priority          *int32
}

// Update applies a partial update to an existing shipping rate.
func (s *Service) Update(ctx context.Context, id int64, patch RatePatch) (Rate, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Rate{}, err
	}
	previousArea := current.Area
	next := current
	if patch.Country != nil {
		next.Country = *patch.Country
	}
	if patch.Area != nil {
		next.Area = strings.TrimSpace(*patch.Area)
	}
	if patch.BaseCost != nil {
		next.BaseCost = *patch.BaseCost
	}
	if patch.SetWeightSlabs {
		next.WeightSlabs = patch.WeightSlabs
	}
	if patch.ClearFreeMinOrder {
		next.FreeMinOrder = nil
	} else if patch.FreeMinOrder != nil {
		next.FreeMinOrder = patch.FreeMinOrder
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	if patch.Priority != nil {
		next.Priority = *patch.Priority
	}
	if err := s.normaliseCountry(&next); err != nil {
		return Rate{}, err
	}
	if err := next.Validate(); err != nil {
		return Rate{}, err
	}
	slabs, err := encodeSlabs(next.WeightSlabs)
	if err != nil {
		return Rate{}, err
	}
	row, err := s.q.UpdateShippingRate(ctx, dbgen.UpdateShippingRateParams{
		ID:           id,
		Country:      next.Country,
		Area:         next.Area,
		BaseCost:     next.BaseCost,
		WeightSlabs:  slabs,
		FreeMinOrder: common.NullDecimal(next.FreeMinOrder),
		IsActive:     next.IsActive,
		Priority:     next.Priority,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rate{}, ErrRateNotFound
		}
		return Rate{}, err
	}
	s.invalidate(ctx, previousArea, row.Area)
	s.logger.Info().Int64("rate_id", row.ID).Str("area", row.Area).Msg("shipping rate updated")
	return rateFromRow(row)
}

// Delete removes a shipping rate permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	row, err := s.q.DeleteShippingRate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRateNotFound
		}
		return err
	}
	s.invalidate(ctx, row.Area)
	s.logger.Info().Int64("rate_id", row.ID).Str("area", row.Area).Msg("shipping rate deleted")
	return nil
}

func (s *Service) normaliseCountry(rate *Rate) error {
	country := strings.ToUpper(strings.TrimSpace(rate.Country))
	if country == "" {
		country = s.country
	}
	if country != s.country {
		return fmt.Errorf("%w: country must be %s", ErrValidation, s.country)
	}
	rate.Country = country
	return nil
}

func (s *Service) invalidate(ctx context.Context, areas ...string) {
	if err := s.cache.Invalidate(ctx, areas...); err != nil {
		s.logger.Warn().Err(err).Strs("areas", areas).Msg("shipping rate cache invalidation failed")
	}
}

package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/obs"
)

var (
	// ErrCouponNotFound is returned by admin operations when the id does not exist.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrDuplicateCode is returned when another coupon already uses the code.
	ErrDuplicateCode = errors.New("coupon code already exists")
	// ErrValidation is returned when coupon input is malformed.
	ErrValidation = errors.New("invalid coupon input")
)

// Querier captures the database methods required by the coupon service.
type Querier interface {
	GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error)
	GetCoupon(ctx context.Context, id int64) (dbgen.Coupon, error)
	ListCoupons(ctx context.Context) ([]dbgen.Coupon, error)
	CreateCoupon(ctx context.Context, arg dbgen.CreateCouponParams) (dbgen.Coupon, error)
	UpdateCoupon(ctx context.Context, arg dbgen.UpdateCouponParams) (dbgen.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) (int64, error)
}

// Summary is the coupon metadata shown alongside a computed discount.
type Summary struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
}

// Result is the outcome of a successful coupon application.
type Result struct {
	DiscountAmount decimal.Decimal
	Coupon         Summary
}

// Coupon is the administrative view of a stored coupon.
type Coupon struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	DiscountType  string           `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MinOrderValue decimal.Decimal  `json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	UsageLimit    *int32           `json:"usageLimit"`
	IsValid       bool             `json:"isValid"`
	ExpiresAt     *time.Time       `json:"expiresAt"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Service evaluates coupons and manages coupon records.
type Service struct {
	Q      Querier
	Now    func() time.Time
	Logger zerolog.Logger
}

// Apply evaluates code against an order subtotal.
func (s *Service) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error) {
	if s == nil || s.Q == nil {
		return Result{}, errors.New("coupon service not configured")
	}
	if subtotal.IsNegative() {
		obs.ObserveCouponEvaluation("invalid_input")
		return Result{}, fmt.Errorf("%w: subtotal must be >= 0", ErrValidation)
	}
	normalised := strings.ToLower(strings.TrimSpace(code))
	if normalised == "" {
		obs.ObserveCouponEvaluation("invalid")
		return Result{}, ErrInvalidCoupon
	}
	row, err := s.Q.GetCouponByCode(ctx, normalised)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			obs.ObserveCouponEvaluation("invalid")
			return Result{}, ErrInvalidCoupon
		}
		return Result{}, fmt.Errorf("load coupon: %w", err)
	}
	rule := RuleFromModel(row)
	if err := rule.Validate(s.now(), subtotal); err != nil {
		obs.ObserveCouponEvaluation(outcomeLabel(err))
		return Result{}, err
	}
	discount := Compute(subtotal, rule)
	obs.ObserveCouponEvaluation("applied")
	return Result{
		DiscountAmount: discount,
		Coupon: Summary{
			Code:           row.Code,
			DiscountAmount: discount,
			DiscountType:   rule.DiscountType,
			DiscountValue:  rule.DiscountValue,
		},
	}, nil
}

// List returns every coupon, newest first.
func (s *Service) List(ctx context.Context) ([]Coupon, error) {
	rows, err := s.Q.ListCoupons(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Coupon, 0, len(rows))
	for _, row := range rows {
		out = append(out, couponFromModel(row))
	}
	return out, nil
}

// Input carries the writable fields of a coupon.
type Input struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	MinOrderValue decimal.Decimal
	MaxDiscount   *decimal.Decimal
	UsageLimit    *int32
	IsValid       bool
	ExpiresAt     *time.Time
}

// Create validates and stores a coupon.
func (s *Service) Create(ctx context.Context, in Input) (Coupon, error) {
	if err := normaliseInput(&in); err != nil {
		return Coupon{}, err
	}
	row, err := s.Q.CreateCoupon(ctx, dbgen.CreateCouponParams{
		Code:          in.Code,
		DiscountType:  dbgen.DiscountType(in.DiscountType),
		DiscountValue: in.DiscountValue,
		MinOrderValue: in.MinOrderValue,
		MaxDiscount:   common.NullDecimal(in.MaxDiscount),
		UsageLimit:    nullableInt4(in.UsageLimit),
		IsValid:       in.IsValid,
		ExpiresAt:     nullableTime(in.ExpiresAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Coupon{}, ErrDuplicateCode
		}
		return Coupon{}, err
	}
	s.Logger.Info().Int64("coupon_id", row.ID).Str("code", row.Code).Msg("coupon created")
	return couponFromModel(row), nil
}

// Patch is a partial coupon update; nil fields are left untouched.
type Patch struct {
	Code             *string
	DiscountType     *string
	DiscountValue    *decimal.Decimal
	MinOrderValue    *decimal.Decimal
	MaxDiscount      *decimal.Decimal
	ClearMaxDiscount bool
	UsageLimit       *int32
	ClearUsageLimit  bool
	IsValid          *bool
	ExpiresAt        *time.Time
	ClearExpiresAt   bool
}

// Update applies a partial update to an existing coupon.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Coupon, error) {
	row, err := s.Q.GetCoupon(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Coupon{}, ErrCouponNotFound
		}
		return Coupon{}, err
	}
	current := couponFromModel(row)
	in := Input{
		Code:          current.Code,
		DiscountType:  current.DiscountType,
		DiscountValue: current.DiscountValue,
		MinOrderValue: current.MinOrderValue,
		MaxDiscount:   current.MaxDiscount,
		UsageLimit:    current.UsageLimit,
		IsValid:       current.IsValid,
		ExpiresAt:     current.ExpiresAt,
	}
	if patch.Code != nil {
		in.Code = *patch.Code
	}
	if patch.DiscountType != nil {
		in.DiscountType = *patch.DiscountType
	}
	if patch.DiscountValue != nil {
		in.DiscountValue = *patch.DiscountValue
	}
	if patch.MinOrderValue != nil {
		in.MinOrderValue = *patch.MinOrderValue
	}
	if patch.ClearMaxDiscount {
		in.MaxDiscount = nil
	} else if patch.MaxDiscount != nil {
		in.MaxDiscount = patch.MaxDiscount
	}
	if patch.ClearUsageLimit {
		in.UsageLimit = nil
	} else if patch.UsageLimit != nil {
		in.UsageLimit = patch.UsageLimit
	}
	if patch.IsValid != nil {
		in.IsValid = *patch.IsValid
	}
	if patch.ClearExpiresAt {
		in.ExpiresAt = nil
	} else if patch.ExpiresAt != nil {
		in.ExpiresAt = patch.ExpiresAt
	}
	if err := normaliseInput(&in); err != nil {
		return Coupon{}, err
	}
	updated, err := s.Q.UpdateCoupon(ctx, dbgen.UpdateCouponParams{
		ID:            id,
		Code:          in.Code,
		DiscountType:  dbgen.DiscountType(in.DiscountType),
		DiscountValue: in.DiscountValue,
		MinOrderValue: in.MinOrderValue,
		MaxDiscount:   common.NullDecimal(in.MaxDiscount),
		UsageLimit:    nullableInt4(in.UsageLimit),
		IsValid:       in.IsValid,
		ExpiresAt:     nullableTime(in.ExpiresAt),
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return Coupon{}, ErrCouponNotFound
		case isUniqueViolation(err):
			return Coupon{}, ErrDuplicateCode
		}
		return Coupon{}, err
	}
	s.Logger.Info().Int64("coupon_id", updated.ID).Str("code", updated.Code).Msg("coupon updated")
	return couponFromModel(updated), nil
}

// Delete removes a coupon.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.Q.DeleteCoupon(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCouponNotFound
	}
	s.Logger.Info().Int64("coupon_id", id).Msg("coupon deleted")
	return nil
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func normaliseInput(in *Input) error {
	in.Code = strings.TrimSpace(in.Code)
	in.DiscountType = strings.ToLower(strings.TrimSpace(in.DiscountType))
	switch {
	case in.Code == "":
		return fmt.Errorf("%w: code is required", ErrValidation)
	case in.DiscountType != TypePercentage && in.DiscountType != TypeFixed:
		return fmt.Errorf("%w: discountType must be percentage or fixed", ErrValidation)
	case !in.DiscountValue.IsPositive():
		return fmt.Errorf("%w: discountValue must be > 0", ErrValidation)
	case in.DiscountType == TypePercentage && in.DiscountValue.GreaterThan(hundred):
		return fmt.Errorf("%w: percentage discountValue must be <= 100", ErrValidation)
	case in.MinOrderValue.IsNegative():
		return fmt.Errorf("%w: minOrderValue must be >= 0", ErrValidation)
	case in.MaxDiscount != nil && in.MaxDiscount.IsNegative():
		return fmt.Errorf("%w: maxDiscount must be >= 0", ErrValidation)
	case in.UsageLimit != nil && *in.UsageLimit < 0:
		return fmt.Errorf("%w: usageLimit must be >= 0", ErrValidation)
	}
	return nil
}

// RuleFromModel converts the generated sqlc model into a Rule used for evaluation.
func RuleFromModel(c dbgen.Coupon) Rule {
	rule := Rule{
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		MinOrderValue: c.MinOrderValue,
		MaxDiscount:   common.DecimalPtr(c.MaxDiscount),
		IsValid:       c.IsValid,
	}
	if c.ExpiresAt.Valid {
		expires := c.ExpiresAt.Time
		rule.ExpiresAt = &expires
	}
	return rule
}

func couponFromModel(c dbgen.Coupon) Coupon {
	out := Coupon{
		ID:            c.ID,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		MinOrderValue: c.MinOrderValue,
		MaxDiscount:   common.DecimalPtr(c.MaxDiscount),
		IsValid:       c.IsValid,
		CreatedAt:     c.CreatedAt.Time,
		UpdatedAt:     c.UpdatedAt.Time,
	}
	if c.UsageLimit.Valid {
		limit := c.UsageLimit.Int32
		out.UsageLimit = &limit
	}
	if c.ExpiresAt.Valid {
		expires := c.ExpiresAt.Time
		out.ExpiresAt = &expires
	}
	return out
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCoupon):
		return "invalid"
	case errors.Is(err, ErrCouponExpired):
		return "expired"
	case errors.Is(err, ErrMinimumNotMet):
		return "minimum_not_met"
	default:
		return "error"
	}
}

func nullableInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func nullableTime(v *time.Time) pgtype.Timestamptz {
	if v == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

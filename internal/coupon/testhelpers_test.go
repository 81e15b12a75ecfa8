package coupon_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

type stubQueries struct {
	mu      sync.Mutex
	nextID  int64
	coupons map[int64]dbgen.Coupon
	lookups []string
}

func newStubQueries() *stubQueries {
	return &stubQueries{coupons: make(map[int64]dbgen.Coupon)}
}

func (s *stubQueries) add(c dbgen.Coupon) dbgen.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.coupons[c.ID] = c
	return c
}

func (s *stubQueries) codeTaken(code string, except int64) bool {
	for id, c := range s.coupons {
		if id != except && strings.EqualFold(c.Code, code) {
			return true
		}
	}
	return false
}

func (s *stubQueries) GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, code)
	for _, c := range s.coupons {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return dbgen.Coupon{}, pgx.ErrNoRows
}

func (s *stubQueries) GetCoupon(ctx context.Context, id int64) (dbgen.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *stubQueries) ListCoupons(ctx context.Context) ([]dbgen.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dbgen.Coupon, 0, len(s.coupons))
	for id := s.nextID; id > 0; id-- {
		if c, ok := s.coupons[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubQueries) CreateCoupon(ctx context.Context, arg dbgen.CreateCouponParams) (dbgen.Coupon, error) {
	s.mu.Lock()
	taken := s.codeTaken(arg.Code, 0)
	s.mu.Unlock()
	if taken {
		return dbgen.Coupon{}, &pgconn.PgError{Code: "23505"}
	}
	return s.add(dbgen.Coupon{
		Code:          arg.Code,
		DiscountType:  arg.DiscountType,
		DiscountValue: arg.DiscountValue,
		MinOrderValue: arg.MinOrderValue,
		MaxDiscount:   arg.MaxDiscount,
		UsageLimit:    arg.UsageLimit,
		IsValid:       arg.IsValid,
		ExpiresAt:     arg.ExpiresAt,
	}), nil
}

func (s *stubQueries) UpdateCoupon(ctx context.Context, arg dbgen.UpdateCouponParams) (dbgen.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[arg.ID]
	if !ok {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	if s.codeTaken(arg.Code, arg.ID) {
		return dbgen.Coupon{}, &pgconn.PgError{Code: "23505"}
	}
	c.Code = arg.Code
	c.DiscountType = arg.DiscountType
	c.DiscountValue = arg.DiscountValue
	c.MinOrderValue = arg.MinOrderValue
	c.MaxDiscount = arg.MaxDiscount
	c.UsageLimit = arg.UsageLimit
	c.IsValid = arg.IsValid
	c.ExpiresAt = arg.ExpiresAt
	s.coupons[arg.ID] = c
	return c, nil
}

func (s *stubQueries) DeleteCoupon(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[id]; !ok {
		return 0, nil
	}
	delete(s.coupons, id)
	return 1, nil
}

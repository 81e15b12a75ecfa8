package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Decision reports the outcome of a single limiter check.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// Limiter decides whether a keyed request is within its quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Fixed wraps a ulule limiter with a fixed rate per key.
type Fixed struct {
	L *limiter.Limiter
}

// NewRedis builds a Fixed limiter backed by a Redis store. rate uses the
// ulule format, e.g. "30-M" for thirty requests per minute.
func NewRedis(client *redis.Client, rate, prefix string) (Fixed, error) {
	parsed, err := limiter.NewRateFromFormatted(strings.TrimSpace(rate))
	if err != nil {
		return Fixed{}, fmt.Errorf("parse rate %q: %w", rate, err)
	}
	store, err := limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return Fixed{}, fmt.Errorf("limiter store: %w", err)
	}
	return Fixed{L: limiter.New(store, parsed)}, nil
}

// Allow implements Limiter.
func (f Fixed) Allow(ctx context.Context, key string) (Decision, error) {
	if f.L == nil {
		return Decision{Allowed: true}, nil
	}
	res, err := f.L.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:   !res.Reached,
		Limit:     res.Limit,
		Remaining: res.Remaining,
		ResetAt:   time.Unix(res.Reset, 0),
	}, nil
}

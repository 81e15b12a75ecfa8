package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateCachePrefix      = "shipping:rates:"
	rateGenerationPrefix = "shipping:rates-gen:"
)

// RateCache stores the active rates of an area in Redis as JSON.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache constructs a cache helper. A nil client or non-positive TTL disables caching.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &RateCache{client: client, ttl: ttl}
}

func rateCacheKey(area string) string {
	return rateCachePrefix + strings.TrimSpace(area)
}

func rateGenerationKey(area string) string {
	return rateGenerationPrefix + strings.TrimSpace(area)
}

// Get loads cached rates for area. It reports whether the key existed.
func (c *RateCache) Get(ctx context.Context, area string) ([]Rate, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, rateCacheKey(area)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var rates []Rate
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, false, err
	}
	return rates, true, nil
}

// Generation returns the invalidation counter of area. Missing counters read as zero.
func (c *RateCache) Generation(ctx context.Context, area string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, rateGenerationKey(area)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfCurrent stores the active rates for area only while its generation still equals gen,
// so rows read before a concurrent invalidation are never cached. It reports whether the
// entry was written.
func (c *RateCache) SetIfCurrent(ctx context.Context, area string, gen int64, rates []Rate) (bool, error) {
	if c == nil {
		return false, nil
	}
	if rates == nil {
		rates = []Rate{}
	}
	data, err := json.Marshal(rates)
	if err != nil {
		return false, err
	}
	genKey := rateGenerationKey(area)
	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rateCacheKey(area), data, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Invalidate drops cached rates for every listed area and bumps their generations.
func (c *RateCache) Invalidate(ctx context.Context, areas ...string) error {
	if c == nil || len(areas) == 0 {
		return nil
	}
	trimmed := make([]string, 0, len(areas))
	for _, area := range areas {
		if strings.TrimSpace(area) == "" {
			continue
		}
		trimmed = append(trimmed, area)
	}
	if len(trimmed) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, area := range trimmed {
			pipe.Incr(ctx, rateGenerationKey(area))
			pipe.Del(ctx, rateCacheKey(area))
		}
		return nil
	})
	return err
}

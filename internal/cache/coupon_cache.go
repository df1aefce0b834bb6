package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

// CouponCache is a read-through cache for coupon lookups by normalized code.
// A nil *CouponCache (or one built without a client) is a no-op, so callers
// never need to branch on whether caching is configured.
type CouponCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCouponCache(rdb *redis.Client, ttl time.Duration) *CouponCache {
	return &CouponCache{rdb: rdb, ttl: ttl}
}

func (c *CouponCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func key(code string) string {
	return "coupon:" + code
}

func (c *CouponCache) Get(ctx context.Context, code string) (*models.Coupon, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(code)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("code", code).Msg("coupon cache read failed")
		}
		return nil, false
	}
	var coupon models.Coupon
	if err := json.Unmarshal(raw, &coupon); err != nil {
		// treat a corrupt entry as a miss and drop it
		_ = c.rdb.Del(ctx, key(code)).Err()
		return nil, false
	}
	return &coupon, true
}

func (c *CouponCache) Set(ctx context.Context, coupon *models.Coupon) {
	if !c.enabled() || coupon == nil {
		return
	}
	raw, err := json.Marshal(coupon)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(coupon.Code), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("code", coupon.Code).Msg("coupon cache write failed")
	}
}

// Invalidate drops the cached entry after an update or delete.
func (c *CouponCache) Invalidate(ctx context.Context, code string) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, key(code)).Err(); err != nil {
		log.Warn().Err(err).Str("code", code).Msg("coupon cache invalidation failed")
	}
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	domain "github.com/seatwise/table-reserve/internal/domain/reservation"
)

// AvailabilityCache is a read-through cache in front of the availability
// service. The computation underneath is always exact; the cache only trades
// freshness within a short TTL and is dropped on every capacity-changing
// mutation, so it never serves counts across a booking or cancellation.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(branchID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", branchID, date)
}

// Get returns the cached result for (branch, date), or nil on miss. Cache
// errors degrade to a miss; availability must keep working without Redis.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	branchID uint,
	date string,
) *domain.AvailabilityResult {

	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := c.rdb.Get(ctx, key(branchID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("availability cache read failed")
		}
		return nil
	}

	var result domain.AvailabilityResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	branchID uint,
	date string,
	result *domain.AvailabilityResult,
) {

	if c == nil || c.rdb == nil || result == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(branchID, date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache write failed")
	}
}

// InvalidateAvailability drops the cached day so the next query recomputes
// from the store.
func (c *AvailabilityCache) InvalidateAvailability(
	ctx context.Context,
	branchID uint,
	date string,
) {

	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(branchID, date)).Err(); err != nil {
		log.Warn().Err(err).Msg("availability cache invalidation failed")
	}
}

// AngelaMos | 2026
// cache.go

package company

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/internhub/internal/core"
)

const activeListKey = "companies:active"

// Cache holds the public active listing.
type Cache interface {
	GetActive(ctx context.Context) ([]Company, bool, error)
	SetActive(ctx context.Context, companies []Company) error
	Invalidate(ctx context.Context) error
}

type redisCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisCache(rdb redis.Cmdable, ttl time.Duration) Cache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

func (c *redisCache) GetActive(ctx context.Context) ([]Company, bool, error) {
	var companies []Company
	found, err := core.GetJSON(ctx, c.rdb, activeListKey, &companies)
	if err != nil || !found {
		return nil, false, err
	}
	return companies, true, nil
}

func (c *redisCache) SetActive(ctx context.Context, companies []Company) error {
	return core.SetJSON(ctx, c.rdb, activeListKey, companies, c.ttl)
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, activeListKey).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", activeListKey, err)
	}
	return nil
}

type noopCache struct{}

func (noopCache) GetActive(context.Context) ([]Company, bool, error) { return nil, false, nil }
func (noopCache) SetActive(context.Context, []Company) error         { return nil }
func (noopCache) Invalidate(context.Context) error                   { return nil }

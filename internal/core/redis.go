// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/internhub/internal/config"
)

// Redis wraps the shared client used by the listing cache and rate limiter.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)

	r := &Redis{Client: client}
	if err := r.Ping(ctx); err != nil {
		_ = client.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return r, nil
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return pingWithin(ctx, "redis", func(ctx context.Context) error {
		return r.Client.Ping(ctx).Err()
	})
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}

// GetJSON decodes the value stored at key into dest. A missing key reports
// found=false with a nil error.
func GetJSON(ctx context.Context, rdb redis.Cmdable, key string, dest any) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}

	return true, nil
}

func SetJSON(
	ctx context.Context,
	rdb redis.Cmdable,
	key string,
	value any,
	ttl time.Duration,
) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

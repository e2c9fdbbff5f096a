package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts attempts in fixed windows shared by every instance:
// the first INCR in a window sets the key expiry.
type RedisLimiter struct {
	client redis.UniversalClient
	cfg    Config
}

// NewRedisLimiter validates cfg and returns a limiter on client.
func NewRedisLimiter(client redis.UniversalClient, cfg Config) (*RedisLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.Join(ErrInvalidConfig, errors.New("nil redis client"))
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = "ratelimit"
	}
	return &RedisLimiter{client: client, cfg: cfg}, nil
}

func (l *RedisLimiter) key(key string) string {
	return l.cfg.RedisPrefix + ":" + key
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	k := l.key(key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, k, l.cfg.Window).Err(); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if ttl < 0 {
		// The expiry was lost; start a fresh window.
		if err := l.client.PExpire(ctx, k, l.cfg.Window).Err(); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		ttl = l.cfg.Window
	}

	return &Result{
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - int(count),
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

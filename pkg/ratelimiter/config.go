package ratelimiter

import (
	"fmt"
	"time"
)

// Config sets the attempt budget for one limiter.
type Config struct {
	Limit           int           `env:"RATELIMIT_LIMIT" envDefault:"10"`
	Window          time.Duration `env:"RATELIMIT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATELIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	RedisPrefix     string        `env:"RATELIMIT_REDIS_PREFIX" envDefault:"ratelimit"`
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

package ratelimiter

import (
	"context"
	"time"
)

// Limiter decides whether another attempt under key is allowed.
type Limiter interface {
	// Allow records one attempt and reports the window state after it.
	Allow(ctx context.Context, key string) (*Result, error)

	// Reset forgets every attempt recorded under key.
	Reset(ctx context.Context, key string) error
}

// Result describes the limiter state after an attempt.
type Result struct {
	Limit     int       // attempts allowed per window
	Remaining int       // negative once the attempt was rejected
	ResetAt   time.Time // when the next attempt will be allowed again
}

// Allowed reports whether the attempt was within the limit.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before trying again; zero when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

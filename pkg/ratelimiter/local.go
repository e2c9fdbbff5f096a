package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one token bucket per key in process memory. Tokens
// refill continuously at Limit per Window with a burst of Limit.
type LocalLimiter struct {
	cfg   Config
	every rate.Limit
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*localEntry

	stop      chan struct{}
	closeOnce sync.Once
}

// NewLocalLimiter validates cfg and starts idle-key cleanup when
// cfg.CleanupInterval is positive.
func NewLocalLimiter(cfg Config) (*LocalLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := &LocalLimiter{
		cfg:     cfg,
		every:   rate.Every(cfg.Window / time.Duration(cfg.Limit)),
		now:     time.Now,
		entries: make(map[string]*localEntry),
		stop:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go l.cleanup(cfg.CleanupInterval)
	}
	return l, nil
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := l.now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.every, l.cfg.Limit)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	res := &Result{Limit: l.cfg.Limit, ResetAt: now}
	if !e.limiter.AllowN(now, 1) {
		res.Remaining = -1
		// Time until one whole token is available again.
		missing := 1 - e.limiter.TokensAt(now)
		res.ResetAt = now.Add(time.Duration(missing * float64(time.Second) / float64(l.every)))
		return res, nil
	}

	res.Remaining = int(e.limiter.TokensAt(now))
	return res, nil
}

func (l *LocalLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	return nil
}

// Len returns the number of tracked keys.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Close stops the cleanup goroutine.
func (l *LocalLimiter) Close() error {
	l.closeOnce.Do(func() { close(l.stop) })
	return nil
}

// evictIdle drops keys untouched for a whole window; their bucket is full
// again so forgetting them changes nothing.
func (l *LocalLimiter) evictIdle() {
	cutoff := l.now().Add(-l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *LocalLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

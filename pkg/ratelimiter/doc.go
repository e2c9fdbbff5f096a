// Package ratelimiter throttles repeated attempts under a key, such as
// login attempts per identifier or requests per client IP.
//
// Two Limiter implementations are provided:
//
//   - LocalLimiter keeps a golang.org/x/time/rate token bucket per key in
//     process memory and evicts idle keys in the background.
//   - RedisLimiter counts attempts in a fixed window with INCR and PEXPIRE,
//     so every instance behind a load balancer shares the budget.
//
// Both report a Result whose Remaining goes negative once the limit is
// exceeded:
//
//	res, err := limiter.Allow(ctx, "login:"+identifier)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		return ErrTooManyAttempts
//	}
//
// Middleware applies a Limiter to HTTP requests and sets the X-RateLimit-*
// and Retry-After headers.
package ratelimiter

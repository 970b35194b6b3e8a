package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned by Execute when no token is available.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs.
	Name string
	// Rate is the number of tokens added per second.
	Rate float64
	// Burst is the bucket size.
	Burst int
	// OnLimit is called, outside the lock, each time a request is refused.
	OnLimit func(name string)
}

// RateLimiter is a token bucket. It is safe for concurrent use.
type RateLimiter struct {
	config RateLimiterConfig
	now    func() time.Time

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a limiter with a full bucket. A non-positive Rate
// becomes 10/s and a non-positive Burst becomes max(1, Rate).
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10
	}
	if config.Burst <= 0 {
		config.Burst = max(1, int(config.Rate))
	}
	rl := &RateLimiter{config: config, now: time.Now}
	rl.tokens = float64(config.Burst)
	rl.lastRefill = rl.now()
	return rl
}

// Allow takes one token if available.
func (rl *RateLimiter) Allow() bool {
	return rl.AllowN(1)
}

// AllowN takes n tokens if available, without blocking.
func (rl *RateLimiter) AllowN(n int) bool {
	rl.mu.Lock()
	rl.refill()
	ok := rl.tokens >= float64(n)
	if ok {
		rl.tokens -= float64(n)
	}
	rl.mu.Unlock()

	if !ok && rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name)
	}
	return ok
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	rl.refill()
	rl.tokens--
	deficit := -rl.tokens
	rl.mu.Unlock()

	if deficit <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(deficit / rl.config.Rate * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		// Give the reserved token back.
		rl.mu.Lock()
		rl.tokens++
		rl.mu.Unlock()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute runs fn if a token is available, else returns ErrRateLimited.
func (rl *RateLimiter) Execute(fn func() error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return fn()
}

// RetryAfter estimates how long until one token is available.
func (rl *RateLimiter) RetryAfter() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	if rl.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - rl.tokens) / rl.config.Rate * float64(time.Second))
}

// Tokens returns the tokens currently available.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens
}

// Rate returns the refill rate per second.
func (rl *RateLimiter) Rate() float64 { return rl.config.Rate }

// Burst returns the bucket size.
func (rl *RateLimiter) Burst() int { return rl.config.Burst }

// refill adds tokens for the time elapsed, capped at Burst. Callers hold mu.
func (rl *RateLimiter) refill() {
	now := rl.now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.config.Rate
	rl.lastRefill = now
	if rl.tokens > float64(rl.config.Burst) {
		rl.tokens = float64(rl.config.Burst)
	}
}

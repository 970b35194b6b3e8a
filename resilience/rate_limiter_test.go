package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced by hand.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg RateLimiterConfig) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	rl := NewRateLimiter(cfg)
	rl.now = clock.Now
	rl.lastRefill = clock.Now()
	return rl, clock
}

func TestNewRateLimiterDefaults(t *testing.T) {
	tests := []struct {
		name  string
		cfg   RateLimiterConfig
		rate  float64
		burst int
	}{
		{"zero config", RateLimiterConfig{}, 10, 10},
		{"burst from rate", RateLimiterConfig{Rate: 5}, 5, 5},
		{"fractional rate", RateLimiterConfig{Rate: 0.5}, 0.5, 1},
		{"explicit", RateLimiterConfig{Rate: 2, Burst: 8}, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.cfg)
			if rl.Rate() != tt.rate || rl.Burst() != tt.burst {
				t.Errorf("got rate=%v burst=%d, want %v/%d", rl.Rate(), rl.Burst(), tt.rate, tt.burst)
			}
		})
	}
}

func TestAllowConsumesBurstThenRefills(t *testing.T) {
	var limited []string
	rl, clock := newTestLimiter(RateLimiterConfig{
		Name: "broadcast", Rate: 2, Burst: 3,
		OnLimit: func(name string) { limited = append(limited, name) },
	})

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow() {
		t.Fatal("bucket should be empty")
	}
	if len(limited) != 1 || limited[0] != "broadcast" {
		t.Errorf("expected one OnLimit call, got %v", limited)
	}
	if got := rl.RetryAfter(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms retry-after, got %v", got)
	}

	clock.Advance(500 * time.Millisecond)
	if !rl.Allow() {
		t.Fatal("one token should have refilled")
	}

	clock.Advance(time.Hour)
	if got := rl.Tokens(); got != 3 {
		t.Errorf("tokens must be capped at burst, got %v", got)
	}
}

func TestAllowN(t *testing.T) {
	rl, _ := newTestLimiter(RateLimiterConfig{Rate: 1, Burst: 5})
	if !rl.AllowN(5) {
		t.Fatal("expected full burst to be allowed")
	}
	if rl.AllowN(1) {
		t.Fatal("expected empty bucket")
	}
}

func TestExecute(t *testing.T) {
	rl, _ := newTestLimiter(RateLimiterConfig{Rate: 1, Burst: 1})
	calls := 0
	fn := func() error { calls++; return nil }

	if err := rl.Execute(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rl.Execute(fn); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 100, Burst: 1})
	ctx := context.Background()

	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	start := time.Now()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("expected to wait for a refill, waited %v", elapsed)
	}
}

func TestWaitCanceledReturnsToken(t *testing.T) {
	rl, _ := newTestLimiter(RateLimiterConfig{Rate: 1, Burst: 1})
	rl.Allow()
	before := rl.Tokens()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if after := rl.Tokens(); after != before {
		t.Errorf("canceled wait must not consume a token: before=%v after=%v", before, after)
	}
}

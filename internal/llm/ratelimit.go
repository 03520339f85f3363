package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter is a token bucket refilled continuously at capacity per minute.
type rateLimiter struct {
	lastRefill time.Time
	now        func() time.Time
	tokens     float64
	capacity   float64
	perSecond  float64
	mu         sync.Mutex
}

// newRateLimiter creates a limiter allowing requestsPerMinute calls, starting
// with a full bucket.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	capacity := float64(requestsPerMinute)
	return &rateLimiter{
		tokens:     capacity,
		capacity:   capacity,
		perSecond:  capacity / 60,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		delay := rl.reserve()
		if delay == 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// reserve takes a token if one is available and otherwise returns how long
// until the next one.
func (rl *rateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.perSecond)
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return 0
	}

	missing := 1 - rl.tokens
	return time.Duration(missing / rl.perSecond * float64(time.Second))
}

// available returns the whole tokens currently in the bucket.
func (rl *rateLimiter) available() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return int(rl.tokens)
}

// RateLimitedClient delays calls so the wrapped client stays under a
// requests-per-minute budget. It never retries.
type RateLimitedClient struct {
	next    Client
	limiter *rateLimiter
}

// NewRateLimitedClient wraps next with a limiter of requestsPerMinute.
func NewRateLimitedClient(next Client, requestsPerMinute int) *RateLimitedClient {
	return &RateLimitedClient{next: next, limiter: newRateLimiter(requestsPerMinute)}
}

// Generate waits for a token, then calls the wrapped client.
func (c *RateLimitedClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.next.Generate(ctx, prompt)
}

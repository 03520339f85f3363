package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRateLimiter(t *testing.T) {
	t.Run("full bucket then refill", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		rl := newRateLimiter(60)
		rl.now = clock.Now
		rl.lastRefill = clock.Now()

		for i := 0; i < 60; i++ {
			require.Zero(t, rl.reserve(), "request %d", i)
		}

		delay := rl.reserve()
		assert.InDelta(t, float64(time.Second), float64(delay), float64(time.Millisecond))

		clock.Advance(time.Second)
		assert.Zero(t, rl.reserve())
	})

	t.Run("refill never exceeds capacity", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		rl := newRateLimiter(5)
		rl.now = clock.Now
		rl.lastRefill = clock.Now()

		clock.Advance(time.Hour)
		_ = rl.reserve()
		assert.Equal(t, 4, rl.available())
	})

	t.Run("default rate", func(t *testing.T) {
		rl := newRateLimiter(0)
		assert.Equal(t, 60, rl.available())
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- rl.wait(ctx)
		}()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("wait did not return after cancellation")
		}
	})
}

func TestRateLimitedClient(t *testing.T) {
	mock := NewMockClient(MockResponse{Text: "ok"})
	client := NewRateLimitedClient(mock, 2)

	for i := 0; i < 2; i++ {
		text, err := client.Generate(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Generate(ctx, "p")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Len(t, mock.Prompts(), 2, "limited call never reaches the provider")
}

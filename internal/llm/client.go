package llm

import (
	"context"
	"fmt"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Generate sends prompt to the model and returns its raw text answer.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds provider settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	// RateLimit caps requests per minute; zero disables limiting.
	RateLimit int
}

// StatusError reports a provider answering with a non-2xx status.
type StatusError struct {
	Provider   string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted Client for tests. Responses are returned in order;
// the last one repeats once the script runs out.
type MockClient struct {
	responses []MockResponse
	prompts   []string
	mu        sync.Mutex
}

// MockResponse is one scripted answer.
type MockResponse struct {
	Err  error
	Text string
}

// NewMockClient creates a mock that answers with responses in order.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// Generate records the prompt and returns the next scripted response.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.prompts = append(m.prompts, prompt)
	if len(m.responses) == 0 {
		return "", nil
	}

	idx := len(m.prompts) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	return r.Text, r.Err
}

// Prompts returns every prompt received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantType any
		wantErr  bool
	}{
		{name: "default provider is gemini", cfg: Config{APIKey: "k"}, wantType: &geminiClient{}},
		{name: "gemini", cfg: Config{Provider: "Gemini", APIKey: "k"}, wantType: &geminiClient{}},
		{name: "openai", cfg: Config{Provider: "openai", APIKey: "k"}, wantType: &openAIClient{}},
		{name: "anthropic", cfg: Config{Provider: "anthropic", APIKey: "k"}, wantType: &anthropicClient{}},
		{name: "rate limited", cfg: Config{APIKey: "k", RateLimit: 10}, wantType: &RateLimitedClient{}},
		{name: "unknown provider", cfg: Config{Provider: "llama", APIKey: "k"}, wantErr: true},
		{name: "missing key", cfg: Config{Provider: "gemini"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, client)
		})
	}
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient(t *testing.T) {
	_, err := newGeminiClient(Config{})
	require.Error(t, err)

	client, err := newGeminiClient(Config{APIKey: "k"})
	require.NoError(t, err)
	gc, ok := client.(*geminiClient)
	require.True(t, ok)
	assert.Equal(t, defaultGeminiModel, gc.model)
	assert.Equal(t, defaultGeminiBaseURL, gc.baseURL)
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"fecha\":null}"}],"role":"model"}}]}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(Config{APIKey: "secret-key", Model: "gemini-test", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, `{"fecha":null}`, text)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "hola", gotBody.Contents[0].Parts[0].Text)
}

func TestGeminiClient_MissingCandidates(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{}`,
		"empty parts":   `{"candidates":[{"content":{"parts":[]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			client, err := newGeminiClient(Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			text, err := client.Generate(context.Background(), "hola")
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestGeminiClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hola")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "API key not valid")
}

func TestGeminiClient_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := newGeminiClient(Config{APIKey: "very-secret", BaseURL: url})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hola")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "very-secret")
}

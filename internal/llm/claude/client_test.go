package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/config"
	"tripwise/internal/llm"
	"tripwise/internal/llm/claude"
	"tripwise/internal/port"
)

func newTestClient(serverURL string) *claude.Client {
	return claude.NewClientWithEndpoint(&config.LLMConfig{
		Provider: "claude",
		APIKey:   "test-anthropic-key",
		Model:    "claude-test",
	}, serverURL)
}

func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-anthropic-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-test", reqBody["model"])
		assert.Equal(t, float64(1000), reqBody["max_tokens"])

		_, _ = w.Write([]byte(`{"model":"claude-test","content":[{"type":"text","text":"{\"vendor\":\"Cafe\"}"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{
		Prompt:      "extract",
		Temperature: 0.2,
		MaxTokens:   1000,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"vendor":"Cafe"}`, out.Text)
	assert.Equal(t, "claude-test", out.Model)
}

func TestClient_Complete_NoTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"tool_use"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
}

func TestClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "x"})

	var apiErr *llm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "anthropic", apiErr.Provider)
}

package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompletionPropose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var payload struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gemma3", payload.Model)
		require.Equal(t, maxCompletionTokens, payload.MaxTokens)
		require.Len(t, payload.Messages, 1)
		require.Contains(t, payload.Messages[0].Content, "FEN")

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"e2e4\n"}}]}`))
	}))
	defer server.Close()

	completion, err := NewCompletion(Config{
		Name:    "gemma3",
		Model:   "gemma3",
		BaseURL: server.URL + "/v1",
		APIKey:  "sk-test",
	})
	require.NoError(t, err)

	proposal, err := completion.Propose(context.Background(), Request{
		Prompt: "Here is the current board in FEN: ...",
	})
	require.NoError(t, err)
	require.Equal(t, "e2e4\n", proposal)
}

func TestCompletionProposeErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model melted", http.StatusInternalServerError)
		}))
		defer server.Close()

		completion, err := NewCompletion(Config{Model: "gemma3", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = completion.Propose(context.Background(), Request{Prompt: "move?"})
		require.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		completion, err := NewCompletion(Config{Model: "gemma3", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = completion.Propose(context.Background(), Request{Prompt: "move?"})
		require.Error(t, err)
	})
}

func TestNewCompletionRequiresModel(t *testing.T) {
	t.Setenv("ARENA_MODEL", "")

	_, err := NewCompletion(Config{})
	require.Error(t, err)
}

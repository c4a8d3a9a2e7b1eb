package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateResponse{Response: `{"name": "Acme"}`})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3", time.Second)

	out, err := c.Generate("extract the company info")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Acme"}`, out)
}

func TestOllamaClientNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3", time.Second)

	_, err := c.Generate("prompt")
	require.Error(t, err)
}

func TestOllamaClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "model not loaded"})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3", time.Second)

	_, err := c.Generate("prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

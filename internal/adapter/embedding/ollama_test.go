package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaEmbedderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text", 3, time.Second)

	vecs, err := e.Embed([]string{"supply of laptops"})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vecs[0])
}

func TestOllamaEmbedderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "missing", 3, time.Second)

	_, err := e.Embed([]string{"text"})
	require.Error(t, err)
}

func TestOllamaEmbedderDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float32{0.1, 0.2}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "nomic-embed-text", 3, time.Second)

	_, err := e.Embed([]string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestOllamaEmbedderEmptyInput(t *testing.T) {
	e := NewOllamaEmbedder("http://localhost:11434", "nomic-embed-text", 3, time.Second)

	vecs, err := e.Embed(nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

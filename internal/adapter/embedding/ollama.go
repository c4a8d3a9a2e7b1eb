package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaEmbedder generates embeddings through an Ollama-compatible
// /api/embeddings endpoint.
type OllamaEmbedder struct {
	model     string
	baseURL   string
	dimension int
	client    *http.Client
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// NewOllamaEmbedder creates an embedder against the given base URL.
// All vectors produced by the service must have the given dimension.
func NewOllamaEmbedder(baseURL, model string, dimension int, timeout time.Duration) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OllamaEmbedder{
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Embed generates one embedding per input text. The Ollama embeddings API
// takes a single prompt per call, so texts are embedded sequentially.
func (e *OllamaEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}

	return embeddings, nil
}

func (e *OllamaEmbedder) embedOne(text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Model:  e.model,
		Prompt: text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", e.baseURL+"/api/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if embResp.Error != "" {
		return nil, fmt.Errorf("API error: %s", embResp.Error)
	}
	if len(embResp.Embedding) != e.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", e.dimension, len(embResp.Embedding))
	}

	return embResp.Embedding, nil
}

// Dimension returns the embedding vector dimension.
func (e *OllamaEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *OllamaEmbedder) ModelName() string {
	return e.model
}

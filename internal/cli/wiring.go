package cli

import (
	"fmt"
	"time"

	"tendermatch/config"
	"tendermatch/internal/adapter/embedding"
	"tendermatch/internal/adapter/store"
	"tendermatch/internal/port"
	"tendermatch/internal/usecase"
)

// buildEmbedder constructs the configured embedder wrapped with the
// zero-vector fallback policy.
func buildEmbedder(cfg *config.Config) (port.Embedder, error) {
	var inner port.Embedder

	switch cfg.Embedding.Provider {
	case "ollama", "":
		inner = embedding.NewOllamaEmbedder(
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			cfg.Embedding.Dimension,
			time.Duration(cfg.Embedding.TimeoutSec)*time.Second,
		)
	case "mock":
		inner = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	return embedding.NewFallback(inner, GetLogger()), nil
}

// openPipeline opens the persistent store and loads the pipeline state.
// Callers must Close the returned store.
func openPipeline(cfg *config.Config) (*usecase.Pipeline, *store.BoltStore, error) {
	if err := config.EnsureDataDir(cfg.Storage.DataDir); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.Open(config.DBPath(cfg.Storage.DataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tender store: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	pipeline, err := usecase.NewPipeline(st, embedder, config.RawTenderDir(cfg.Storage.DataDir), GetLogger())
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	return pipeline, st, nil
}

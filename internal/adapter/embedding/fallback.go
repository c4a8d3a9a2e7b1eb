package embedding

import (
	"go.uber.org/zap"

	"tendermatch/internal/port"
)

// Fallback wraps an Embedder with a degrade-not-crash policy: any failure
// yields a zero vector of the configured dimension instead of an error.
// Callers must tolerate all-zero embeddings; under L2 they sort as far from
// everything and never corrupt the index shape.
type Fallback struct {
	inner  port.Embedder
	logger *zap.Logger
}

// NewFallback wraps inner so that Embed never returns an error.
func NewFallback(inner port.Embedder, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{inner: inner, logger: logger}
}

// Embed returns one vector per input text, substituting zero vectors for
// any texts the underlying embedder could not process.
func (f *Fallback) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := f.inner.Embed(texts)
	if err != nil {
		f.logger.Error("embedding failed, substituting zero vectors",
			zap.Int("texts", len(texts)),
			zap.String("model", f.inner.ModelName()),
			zap.Error(err))
		embeddings = nil
	}

	dim := f.inner.Dimension()
	out := make([][]float32, len(texts))
	for i := range texts {
		if i < len(embeddings) && len(embeddings[i]) == dim {
			out[i] = embeddings[i]
			continue
		}
		out[i] = make([]float32, dim)
	}

	return out, nil
}

// Dimension returns the embedding vector dimension.
func (f *Fallback) Dimension() int {
	return f.inner.Dimension()
}

// ModelName returns the name of the underlying embedding model.
func (f *Fallback) ModelName() string {
	return f.inner.ModelName()
}

package usecase

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tendermatch/internal/adapter/index"
	"tendermatch/internal/adapter/store"
	"tendermatch/internal/domain"
	"tendermatch/internal/port"
)

// Pipeline holds the shared dataset state every stage operates on: the
// tender store, the vector index aligned with it, and the embedder. It is
// the single writer; all appends are serialized behind its mutex so the
// ordinal alignment between index and store survives concurrent callers.
type Pipeline struct {
	store    *store.BoltStore
	index    *index.FlatL2
	embedder port.Embedder
	rawDir   string
	logger   *zap.Logger

	mu      sync.Mutex
	tenders []domain.Tender
}

// NewPipeline loads the persisted dataset and rebuilds the in-memory index
// from it. Corrupt or mismatched persisted data degrades to an empty
// dataset with a warning, never an error to the caller.
func NewPipeline(st *store.BoltStore, embedder port.Embedder, rawDir string, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		store:    st,
		index:    index.NewFlatL2(embedder.Dimension()),
		embedder: embedder,
		rawDir:   rawDir,
		logger:   logger,
	}

	tenders, err := st.All()
	if err == nil {
		vectors := make([][]float32, len(tenders))
		for i, t := range tenders {
			vectors[i] = t.Embedding
		}
		if addErr := p.index.Add(vectors); addErr != nil {
			err = addErr
		} else {
			p.tenders = tenders
		}
	}

	if err != nil {
		p.logger.Warn("persisted dataset unusable, starting empty",
			zap.Error(err))
		if resetErr := st.Reset(); resetErr != nil {
			return nil, fmt.Errorf("failed to reset corrupt store: %w", resetErr)
		}
		p.index = index.NewFlatL2(embedder.Dimension())
		p.tenders = nil
	}

	p.logger.Info("pipeline loaded",
		zap.Int("tenders", len(p.tenders)),
		zap.Int("vectors", p.index.Size()))

	return p, nil
}

// Ingest embeds and appends a batch of tenders. Embedding failures degrade
// to zero vectors through the embedder; the store append and index append
// happen under one critical section so counts stay equal. progress, when
// non-nil, is called after each tender is embedded.
func (p *Pipeline) Ingest(tenders []domain.Tender, progress func(done, total int)) error {
	if len(tenders) == 0 {
		return nil
	}

	for i := range tenders {
		text := tenders[i].Title + " " + tenders[i].Description
		vecs, err := p.embedder.Embed([]string{text})
		if err != nil || len(vecs) != 1 {
			// The fallback embedder never errors; a bare embedder might.
			p.logger.Error("embedding failed for tender",
				zap.String("id", tenders[i].ID),
				zap.Error(err))
			vecs = [][]float32{make([]float32, p.embedder.Dimension())}
		}
		tenders[i].Embedding = vecs[0]
		if progress != nil {
			progress(i+1, len(tenders))
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.AppendBatch(tenders); err != nil {
		return fmt.Errorf("failed to persist tenders: %w", err)
	}

	vectors := make([][]float32, len(tenders))
	for i, t := range tenders {
		vectors[i] = t.Embedding
	}
	if err := p.index.Add(vectors); err != nil {
		// Store and index now disagree; surface it loudly instead of
		// continuing with a misaligned dataset.
		return fmt.Errorf("index append failed after store append: %w", err)
	}
	p.tenders = append(p.tenders, tenders...)

	store.WriteRawTenders(p.rawDir, tenders, p.logger)

	p.logger.Info("ingested tenders",
		zap.Int("batch", len(tenders)),
		zap.Int("total", len(p.tenders)))

	return nil
}

// Tenders returns the loaded tender collection in append order.
func (p *Pipeline) Tenders() []domain.Tender {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tenders
}

// Index returns the vector index aligned with Tenders.
func (p *Pipeline) Index() *index.FlatL2 {
	return p.index
}

// Embedder returns the pipeline's embedder.
func (p *Pipeline) Embedder() port.Embedder {
	return p.embedder
}

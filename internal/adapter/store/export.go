package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tendermatch/internal/domain"
)

// WriteRawTenders writes one {id}.json per tender into dir, embedding
// stripped. The export exists purely for auditability: it is never read
// back into the running system, and write failures are logged, not fatal.
func WriteRawTenders(dir string, tenders []domain.Tender, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("failed to create raw tender directory",
			zap.String("dir", dir),
			zap.Error(err))
		return
	}

	for _, tender := range tenders {
		// Tender.Embedding is json:"-", so the export never carries vectors.
		data, err := json.MarshalIndent(tender, "", "  ")
		if err != nil {
			logger.Error("failed to marshal raw tender",
				zap.String("id", tender.ID),
				zap.Error(err))
			continue
		}

		path := filepath.Join(dir, tender.ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			logger.Error("failed to write raw tender",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

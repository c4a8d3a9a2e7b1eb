package usecase

import (
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tendermatch/internal/adapter/fs"
)

// AuditResult cross-references the raw tender export directory against the
// tender store. The export has no consistency requirement with the store,
// so mismatches are reported, never repaired.
type AuditResult struct {
	StoreCount int      `json:"store_count"`
	FileCount  int      `json:"file_count"`
	Missing    []string `json:"missing,omitempty"` // stored but not exported
	Orphans    []string `json:"orphans,omitempty"` // exported but not stored
}

// AuditUseCase checks the audit export against the store.
type AuditUseCase struct {
	pipeline *Pipeline
	rawDir   string
	logger   *zap.Logger
}

func NewAuditUseCase(p *Pipeline, rawDir string, logger *zap.Logger) *AuditUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditUseCase{pipeline: p, rawDir: rawDir, logger: logger}
}

// Run walks the export directory with the given glob filters and compares
// file IDs against the store.
func (u *AuditUseCase) Run(includes, excludes []string) (AuditResult, error) {
	walker := fs.NewWalker(includes, excludes)

	files, err := walker.Walk(u.rawDir)
	if err != nil {
		return AuditResult{}, err
	}

	exported := make(map[string]bool, len(files))
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), ".json")
		exported[id] = true
	}

	tenders := u.pipeline.Tenders()
	stored := make(map[string]bool, len(tenders))

	result := AuditResult{
		StoreCount: len(tenders),
		FileCount:  len(files),
	}

	for _, t := range tenders {
		stored[t.ID] = true
		if !exported[t.ID] {
			result.Missing = append(result.Missing, t.ID)
		}
	}
	for id := range exported {
		if !stored[id] {
			result.Orphans = append(result.Orphans, id)
		}
	}
	sort.Strings(result.Orphans)

	u.logger.Info("audit complete",
		zap.Int("stored", result.StoreCount),
		zap.Int("exported", result.FileCount),
		zap.Int("missing", len(result.Missing)),
		zap.Int("orphans", len(result.Orphans)))

	return result, nil
}

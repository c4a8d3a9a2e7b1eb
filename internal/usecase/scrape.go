package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"tendermatch/config"
	"tendermatch/internal/adapter/scraper"
	"tendermatch/internal/domain"
)

// ScrapeUseCase runs one scrape cycle: every configured source is scraped
// in isolation, the surviving records are embedded and appended once as a
// single batch.
type ScrapeUseCase struct {
	scraper  *scraper.Scraper
	pipeline *Pipeline
	sources  []config.Source
	delay    time.Duration
	logger   *zap.Logger
}

// NewScrapeUseCase creates a scrape use case. delay is the politeness pause
// between sources.
func NewScrapeUseCase(sc *scraper.Scraper, p *Pipeline, sources []config.Source, delay time.Duration, logger *zap.Logger) *ScrapeUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScrapeUseCase{
		scraper:  sc,
		pipeline: p,
		sources:  sources,
		delay:    delay,
		logger:   logger,
	}
}

// Run scrapes all sources and stores the results. A failing source is
// recorded in the report and never aborts the rest; the report status is
// "partial" when some sources failed, "error" when storing failed or no
// source succeeded.
func (u *ScrapeUseCase) Run(progress func(done, total int)) domain.ScrapeReport {
	var (
		all     []domain.Tender
		results []domain.SourceResult
		failed  int
	)

	for i, src := range u.sources {
		if i > 0 && u.delay > 0 {
			time.Sleep(u.delay)
		}

		tenders, err := u.scraper.ScrapeSource(src, time.Now())
		if err != nil {
			u.logger.Error("source scrape failed",
				zap.String("source", src.Name),
				zap.Error(err))
			results = append(results, domain.SourceResult{Name: src.Name, Err: err.Error()})
			failed++
			continue
		}

		results = append(results, domain.SourceResult{Name: src.Name, TenderCount: len(tenders)})
		all = append(all, tenders...)
	}

	if len(u.sources) > 0 && failed == len(u.sources) {
		return domain.ScrapeReport{
			Status:  domain.StatusError,
			Message: "all sources failed",
			Sources: results,
		}
	}

	if err := u.pipeline.Ingest(all, progress); err != nil {
		return domain.ScrapeReport{
			Status:  domain.StatusError,
			Message: fmt.Sprintf("error storing tenders: %v", err),
			Sources: results,
		}
	}

	status := domain.StatusSuccess
	if failed > 0 {
		status = domain.StatusPartial
	}

	return domain.ScrapeReport{
		Status:      status,
		Message:     fmt.Sprintf("scraped and stored %d tenders", len(all)),
		TenderCount: len(all),
		Sources:     results,
	}
}

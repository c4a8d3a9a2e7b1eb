package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"tendermatch/config"
	"tendermatch/internal/domain"
	"tendermatch/internal/port"
)

// Scraper normalizes listing elements from source pages into canonical
// Tender records. Each source is isolated: a failure scraping one source
// never aborts the others.
type Scraper struct {
	fetcher      port.Fetcher
	registry     *Registry
	maxPerSource int
	logger       *zap.Logger
}

// NewScraper creates a scraper. maxPerSource caps the listing elements
// processed per source; zero or negative means the default of 20.
func NewScraper(fetcher port.Fetcher, registry *Registry, maxPerSource int, logger *zap.Logger) *Scraper {
	if maxPerSource <= 0 {
		maxPerSource = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		fetcher:      fetcher,
		registry:     registry,
		maxPerSource: maxPerSource,
		logger:       logger,
	}
}

// ScrapeSource fetches one source page and normalizes its listing elements.
// Records lacking both a title and a description are dropped. IDs are
// assigned as {normalized-source}-{unix-seconds}-{batch-index}; collisions
// across scrape cycles within the same second are a documented open risk.
func (s *Scraper) ScrapeSource(src config.Source, now time.Time) ([]domain.Tender, error) {
	doc, err := s.fetcher.Fetch(src.URL)
	if err != nil {
		return nil, err
	}

	extractor := s.registry.Get(src.Extractor)
	generic := s.registry.Generic()
	timestamp := now.Unix()

	var tenders []domain.Tender
	doc.Find(src.Selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= s.maxPerSource {
			return false
		}

		raw, err := extractor.Extract(sel, src.URL)
		if err != nil {
			s.logger.Debug("source extraction failed, using generic",
				zap.String("source", src.Name),
				zap.Int("element", i),
				zap.Error(err))
			raw, _ = generic.Extract(sel, src.URL)
		}

		if raw.Title == "" && raw.Description == "" {
			return true
		}

		rawHTML, err := goquery.OuterHtml(sel)
		if err != nil {
			rawHTML = sel.Text()
		}

		url := raw.URL
		if url == "" {
			url = src.URL
		}

		tenders = append(tenders, domain.Tender{
			ID:              fmt.Sprintf("%s-%d-%d", NormalizeSourceName(src.Name), timestamp, i),
			Title:           raw.Title,
			Description:     raw.Description,
			Amount:          raw.Amount,
			Deadline:        raw.Deadline,
			Source:          src.Name,
			URL:             url,
			Category:        raw.Category,
			Department:      raw.Department,
			Location:        raw.Location,
			PublicationDate: raw.PublicationDate,
			RawText:         rawHTML,
		})
		return true
	})

	s.logger.Info("scraped source",
		zap.String("source", src.Name),
		zap.Int("tenders", len(tenders)))

	return tenders, nil
}

// NormalizeSourceName lowercases a source name and replaces spaces with
// hyphens, forming the ID prefix.
func NormalizeSourceName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

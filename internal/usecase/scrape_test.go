package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tendermatch/config"
	"tendermatch/internal/adapter/scraper"
	"tendermatch/internal/domain"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(url string) (*goquery.Document, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: connection refused", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func listingPage(titles ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, title := range titles {
		fmt.Fprintf(&b, `<div class="item"><h4>%s</h4><p>Description of %s</p></div>`, title, title)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func newScrapeUseCase(t *testing.T, p *Pipeline, fetcher *fakeFetcher, sources []config.Source) *ScrapeUseCase {
	t.Helper()
	sc := scraper.NewScraper(fetcher, scraper.NewRegistry(), 20, nil)
	return NewScrapeUseCase(sc, p, sources, 0, nil)
}

func TestScrapeRunSuccess(t *testing.T) {
	p, _ := newTestPipeline(t)

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://a.gov": listingPage("Road works", "Bridge repair"),
		"https://b.gov": listingPage("School supplies"),
	}}
	sources := []config.Source{
		{Name: "Portal A", URL: "https://a.gov", Selector: "div.item"},
		{Name: "Portal B", URL: "https://b.gov", Selector: "div.item"},
	}

	report := newScrapeUseCase(t, p, fetcher, sources).Run(nil)

	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, 3, report.TenderCount)
	require.Len(t, report.Sources, 2)
	assert.Equal(t, 2, report.Sources[0].TenderCount)
	assert.Equal(t, 1, report.Sources[1].TenderCount)

	// Stored and indexed as one aligned batch.
	assert.Equal(t, 3, len(p.Tenders()))
	assert.Equal(t, 3, p.Index().Size())
}

func TestScrapeRunPartialOnSourceFailure(t *testing.T) {
	p, _ := newTestPipeline(t)

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://up.gov": listingPage("Road works"),
	}}
	sources := []config.Source{
		{Name: "Up Portal", URL: "https://up.gov", Selector: "div.item"},
		{Name: "Down Portal", URL: "https://down.gov", Selector: "div.item"},
	}

	report := newScrapeUseCase(t, p, fetcher, sources).Run(nil)

	assert.Equal(t, domain.StatusPartial, report.Status)
	assert.Equal(t, 1, report.TenderCount)
	require.Len(t, report.Sources, 2)
	assert.Empty(t, report.Sources[0].Err)
	assert.NotEmpty(t, report.Sources[1].Err)

	// The failing source never blocks the healthy one.
	assert.Equal(t, 1, len(p.Tenders()))
}

func TestScrapeRunAllSourcesFail(t *testing.T) {
	p, _ := newTestPipeline(t)

	fetcher := &fakeFetcher{pages: map[string]string{}}
	sources := []config.Source{
		{Name: "Down A", URL: "https://a.down", Selector: "div.item"},
		{Name: "Down B", URL: "https://b.down", Selector: "div.item"},
	}

	report := newScrapeUseCase(t, p, fetcher, sources).Run(nil)

	assert.Equal(t, domain.StatusError, report.Status)
	assert.Equal(t, 0, report.TenderCount)
	assert.Empty(t, p.Tenders())
}

func TestScrapeRunNoSources(t *testing.T) {
	p, _ := newTestPipeline(t)

	report := newScrapeUseCase(t, p, &fakeFetcher{}, nil).Run(nil)

	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, 0, report.TenderCount)
}

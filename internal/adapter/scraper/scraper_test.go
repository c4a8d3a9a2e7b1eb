package scraper

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tendermatch/config"
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

const nicgepPage = `<html><body><table class="list_table">
<tr>
  <td>Road resurfacing works</td>
  <td>Resurfacing of 12 km state highway</td>
  <td>Rs. 2,50,000</td>
  <td>15/08/2024</td>
  <td><a href="/tender/123">details</a></td>
</tr>
<tr>
  <td>School furniture supply</td>
  <td>Supply of desks and benches</td>
  <td>INR 5 Cr</td>
  <td>5 Jan 2025</td>
</tr>
</table></body></html>`

func nicgepSource(url string) config.Source {
	return config.Source{
		Name:      "Tamil Nadu Tenders",
		URL:       url,
		Selector:  "table.list_table tr",
		Extractor: "nicgep",
	}
}

func TestScrapeSourceNICGEP(t *testing.T) {
	url := "https://tntenders.gov.in/nicgep/app"
	fetcher := &fakeFetcher{pages: map[string]string{url: nicgepPage}}
	sc := NewScraper(fetcher, NewRegistry(), 20, nil)

	now := time.Unix(1700000000, 0)
	tenders, err := sc.ScrapeSource(nicgepSource(url), now)
	require.NoError(t, err)
	require.Len(t, tenders, 2)

	first := tenders[0]
	assert.Equal(t, "tamil-nadu-tenders-1700000000-0", first.ID)
	assert.Equal(t, "Road resurfacing works", first.Title)
	assert.Equal(t, "Resurfacing of 12 km state highway", first.Description)
	require.NotNil(t, first.Amount)
	assert.Equal(t, 250000.0, *first.Amount)
	assert.Equal(t, "15/08/2024", first.Deadline)
	assert.Equal(t, url+"/tender/123", first.URL)
	assert.Equal(t, "Tamil Nadu Tenders", first.Source)
	assert.NotEmpty(t, first.RawText)

	second := tenders[1]
	assert.Equal(t, "tamil-nadu-tenders-1700000000-1", second.ID)
	require.NotNil(t, second.Amount)
	assert.Equal(t, 50000000.0, *second.Amount)
	assert.Equal(t, "5 Jan 2025", second.Deadline)
	// No link in the row: URL falls back to the source page.
	assert.Equal(t, url, second.URL)
}

func TestScrapeSourceFallsBackToGeneric(t *testing.T) {
	url := "https://example.gov/tenders"
	// Layout does not match the nicgep extractor; generic fallback applies.
	page := `<html><body><div class="listing">
	  <h3>Bridge maintenance contract</h3>
	  <p>Annual maintenance, estimated ₹ 10.5 Lakhs, bids due 01-09-2024.</p>
	  <a href="https://example.gov/tenders/9">view</a>
	</div></body></html>`

	fetcher := &fakeFetcher{pages: map[string]string{url: page}}
	sc := NewScraper(fetcher, NewRegistry(), 20, nil)

	src := config.Source{Name: "Example Portal", URL: url, Selector: "div.listing", Extractor: "nicgep"}
	tenders, err := sc.ScrapeSource(src, time.Unix(1, 0))
	require.NoError(t, err)
	require.Len(t, tenders, 1)

	got := tenders[0]
	assert.Equal(t, "Bridge maintenance contract", got.Title)
	assert.Contains(t, got.Description, "Annual maintenance")
	require.NotNil(t, got.Amount)
	assert.Equal(t, 1050000.0, *got.Amount)
	assert.Equal(t, "01-09-2024", got.Deadline)
	assert.Equal(t, "https://example.gov/tenders/9", got.URL)
}

func TestScrapeSourceDropsEmptyRecords(t *testing.T) {
	url := "https://example.gov/empty"
	page := `<html><body>
	  <div class="item"></div>
	  <div class="item">   </div>
	  <div class="item"><h4>Real tender</h4><p>With a description</p></div>
	</body></html>`

	fetcher := &fakeFetcher{pages: map[string]string{url: page}}
	sc := NewScraper(fetcher, NewRegistry(), 20, nil)

	src := config.Source{Name: "Empty Portal", URL: url, Selector: "div.item"}
	tenders, err := sc.ScrapeSource(src, time.Unix(1, 0))
	require.NoError(t, err)
	require.Len(t, tenders, 1)
	assert.Equal(t, "Real tender", tenders[0].Title)
}

func TestScrapeSourceRespectsCap(t *testing.T) {
	var rows strings.Builder
	rows.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&rows, `<div class="item"><h4>Tender %d</h4><p>desc</p></div>`, i)
	}
	rows.WriteString("</body></html>")

	url := "https://example.gov/many"
	fetcher := &fakeFetcher{pages: map[string]string{url: rows.String()}}
	sc := NewScraper(fetcher, NewRegistry(), 20, nil)

	src := config.Source{Name: "Many Portal", URL: url, Selector: "div.item"}
	tenders, err := sc.ScrapeSource(src, time.Unix(1, 0))
	require.NoError(t, err)
	assert.Len(t, tenders, 20)
}

func TestScrapeSourceFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	sc := NewScraper(fetcher, NewRegistry(), 20, nil)

	_, err := sc.ScrapeSource(nicgepSource("https://down.gov"), time.Now())
	require.Error(t, err)
}

func TestNormalizeSourceName(t *testing.T) {
	assert.Equal(t, "tamil-nadu-tenders", NormalizeSourceName("Tamil Nadu Tenders"))
	assert.Equal(t, "gem", NormalizeSourceName("GeM"))
}

func TestRegistryFallsBackToGeneric(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &NICGEPExtractor{}, r.Get("nicgep"))
	assert.IsType(t, &EProcureExtractor{}, r.Get("eprocure"))
	assert.IsType(t, &GeMExtractor{}, r.Get("gem"))
	assert.IsType(t, &GenericExtractor{}, r.Get(""))
	assert.IsType(t, &GenericExtractor{}, r.Get("unknown-portal"))
}

package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tendermatch/internal/adapter/extract"
	"tendermatch/internal/domain"
)

// GenericExtractor is the layout-agnostic fallback: title from the first
// heading, description from the full visible text, amount and deadline from
// pattern extraction over the text.
type GenericExtractor struct{}

// Extract pulls tender fields out of an element without layout knowledge.
func (e *GenericExtractor) Extract(sel *goquery.Selection, baseURL string) (domain.RawTender, error) {
	var raw domain.RawTender

	text := strings.TrimSpace(sel.Text())

	if heading := sel.Find("h1, h2, h3, h4, h5, h6").First(); heading.Length() > 0 {
		raw.Title = strings.TrimSpace(heading.Text())
	} else {
		raw.Title = firstChars(text, 100)
	}

	raw.Description = text

	if amount, ok := extract.Amount(text); ok {
		raw.Amount = &amount
	}
	if date, ok := extract.Date(text); ok {
		raw.Deadline = date
	}

	if href, ok := sel.Find("a").First().Attr("href"); ok {
		raw.URL = href
	} else {
		raw.URL = baseURL
	}

	return raw, nil
}

// firstChars returns the first n runes of s.
func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

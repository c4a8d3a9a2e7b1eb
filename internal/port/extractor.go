package port

import (
	"github.com/PuerkitoBio/goquery"

	"tendermatch/internal/domain"
)

// SourceExtractor extracts tender fields from one listing element of a
// source page. Implementations know the layout of a specific portal; the
// generic extractor is the layout-agnostic fallback.
type SourceExtractor interface {
	// Extract pulls tender fields out of a single listing element.
	// baseURL is the source page URL, used to resolve relative links.
	Extract(sel *goquery.Selection, baseURL string) (domain.RawTender, error)
}

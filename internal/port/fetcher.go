package port

import "github.com/PuerkitoBio/goquery"

// Fetcher retrieves a page and parses it into a DOM-like document.
type Fetcher interface {
	// Fetch downloads and parses the page at url.
	Fetch(url string) (*goquery.Document, error)
}

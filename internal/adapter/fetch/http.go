package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client fetches source pages over HTTP and parses them into goquery
// documents. A fetch failure skips the source; there is no degraded mode.
type Client struct {
	client *http.Client
}

// NewClient creates a fetcher with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads and parses the page at url.
func (c *Client) Fetch(url string) (*goquery.Document, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	return doc, nil
}

package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tendermatch/internal/adapter/extract"
	"tendermatch/internal/domain"
)

// NICGEPExtractor handles NIC GePNIC portals (Tamil Nadu, Maharashtra and
// other state portals share the same table-row listing layout).
type NICGEPExtractor struct{}

func (e *NICGEPExtractor) Extract(sel *goquery.Selection, baseURL string) (domain.RawTender, error) {
	title, err := cellText(sel, "td:nth-child(1)")
	if err != nil {
		return domain.RawTender{}, err
	}
	description, err := cellText(sel, "td:nth-child(2)")
	if err != nil {
		return domain.RawTender{}, err
	}

	raw := domain.RawTender{
		Title:       title,
		Description: description,
	}

	if amountText, err := cellText(sel, "td:nth-child(3)"); err == nil {
		if amount, ok := extract.Amount(amountText); ok {
			raw.Amount = &amount
		}
	}
	if deadline, err := cellText(sel, "td:nth-child(4)"); err == nil {
		raw.Deadline = deadline
	}
	raw.URL = detailURL(sel, "a", baseURL)

	return raw, nil
}

// EProcureExtractor handles the Central Public Procurement Portal's
// list-group layout.
type EProcureExtractor struct{}

func (e *EProcureExtractor) Extract(sel *goquery.Selection, baseURL string) (domain.RawTender, error) {
	title, err := cellText(sel, "h4")
	if err != nil {
		return domain.RawTender{}, err
	}
	description, err := cellText(sel, "p.description")
	if err != nil {
		return domain.RawTender{}, err
	}

	raw := domain.RawTender{
		Title:       title,
		Description: description,
	}

	if amountText, err := cellText(sel, "span.amount"); err == nil {
		if amount, ok := extract.Amount(amountText); ok {
			raw.Amount = &amount
		}
	}
	if deadline, err := cellText(sel, "span.deadline"); err == nil {
		raw.Deadline = deadline
	}
	raw.URL = detailURL(sel, "a", baseURL)

	return raw, nil
}

// GeMExtractor handles Government e-Marketplace bidding cards.
type GeMExtractor struct{}

func (e *GeMExtractor) Extract(sel *goquery.Selection, baseURL string) (domain.RawTender, error) {
	title, err := cellText(sel, "h3.card-title")
	if err != nil {
		return domain.RawTender{}, err
	}
	description, err := cellText(sel, "div.card-text")
	if err != nil {
		return domain.RawTender{}, err
	}

	raw := domain.RawTender{
		Title:       title,
		Description: description,
	}

	if amountText, err := cellText(sel, "span.bid-amount"); err == nil {
		if amount, ok := extract.Amount(amountText); ok {
			raw.Amount = &amount
		}
	}
	if deadline, err := cellText(sel, "span.deadline"); err == nil {
		raw.Deadline = deadline
	}
	if href, ok := sel.Find("a.card-link").First().Attr("href"); ok {
		raw.URL = href
	} else {
		raw.URL = baseURL
	}

	return raw, nil
}

// cellText returns the trimmed text of the first element matching selector,
// or an error when the element is absent so the caller can fall back.
func cellText(sel *goquery.Selection, selector string) (string, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return strings.TrimSpace(found.Text()), nil
}

// detailURL resolves the first matching link against the source base URL.
func detailURL(sel *goquery.Selection, selector, baseURL string) string {
	href, ok := sel.Find(selector).First().Attr("href")
	if !ok {
		return baseURL
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}

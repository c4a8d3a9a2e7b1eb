package domain

// Tender is a canonical record of one government procurement notice.
// Records are immutable once stored: the pipeline appends, never updates.
type Tender struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Amount          *float64  `json:"amount,omitempty"`
	Deadline        string    `json:"deadline,omitempty"`
	Source          string    `json:"source"`
	URL             string    `json:"url"`
	Category        string    `json:"category,omitempty"`
	Department      string    `json:"department,omitempty"`
	Location        string    `json:"location,omitempty"`
	PublicationDate string    `json:"publication_date,omitempty"`
	RawText         string    `json:"raw_text"`
	Embedding       []float32 `json:"-"`
}

// RawTender holds per-source extracted fields before a Tender is assembled.
// Title and Description are the only fields the acceptance filter inspects.
type RawTender struct {
	Title           string
	Description     string
	Amount          *float64
	Deadline        string
	URL             string
	Category        string
	Department      string
	Location        string
	PublicationDate string
}

// CompanyProfile is built per matching request and discarded afterwards.
// The embedding is computed from Description and never persisted.
type CompanyProfile struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Services     []string  `json:"services"`
	Capabilities []string  `json:"capabilities"`
	Expertise    []string  `json:"expertise"`
	Embedding    []float32 `json:"-"`
}

// Recommendation pairs a company request with one candidate tender.
type Recommendation struct {
	TenderID        string  `json:"tender_id"`
	TenderTitle     string  `json:"tender_title"`
	SimilarityScore float64 `json:"similarity_score"`
	TenderDetails   Tender  `json:"tender_details"`
}

// SourceResult records the outcome of scraping a single source.
type SourceResult struct {
	Name        string `json:"name"`
	TenderCount int    `json:"tender_count"`
	Err         string `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// ScrapeReport is the structured result of one scrape cycle. Status is
// "success" when every source scraped cleanly, "partial" when some sources
// failed but others produced tenders, "error" when nothing was stored.
type ScrapeReport struct {
	Status      string         `json:"status"`
	Message     string         `json:"message"`
	TenderCount int            `json:"tender_count"`
	Sources     []SourceResult `json:"sources"`
}

// MatchReport is the structured result of one profile-matching request.
type MatchReport struct {
	Status          string           `json:"status"`
	Message         string           `json:"message,omitempty"`
	CompanyInfo     *CompanyProfile  `json:"company_info,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

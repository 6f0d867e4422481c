package model

import "time"

// PageResult is the SEO evaluation of a single crawled page.
// It is immutable once produced by the analyzer.
type PageResult struct {
	// URL is the absolute URL of the evaluated page.
	URL string `json:"url"`

	// StatusCode is the HTTP status code, or 0 if the fetch failed.
	StatusCode int `json:"status_code"`

	// Title is the trimmed text of the <title> element.
	// Empty when the page has no title.
	Title string `json:"title,omitempty"`

	// TitleLength is the character count of Title.
	TitleLength int `json:"title_length"`

	// MetaDescription is the trimmed content of the description meta tag,
	// falling back to og:description when absent.
	MetaDescription string `json:"meta_description,omitempty"`

	// MetaDescriptionLength is the character count of MetaDescription.
	MetaDescriptionLength int `json:"meta_description_length"`

	// H1Count is the number of <h1> elements on the page.
	H1Count int `json:"h1_count"`

	// H1Texts holds the trimmed text of each H1, in document order.
	H1Texts []string `json:"h1_texts,omitempty"`

	// CanonicalPresent reports whether a canonical link element exists.
	CanonicalPresent bool `json:"canonical_present"`

	// CanonicalURL is the href of the canonical link element, if present.
	CanonicalURL string `json:"canonical_url,omitempty"`

	// Noindex reports whether the robots meta tag or the X-Robots-Tag
	// header contains a noindex directive.
	Noindex bool `json:"noindex"`

	// PageSizeKB is the raw response size in kilobytes,
	// rounded to two decimals.
	PageSizeKB float64 `json:"page_size_kb"`

	// InternalLinks is the count of same-domain links found on the page.
	InternalLinks int `json:"internal_links"`

	// Issues lists the detected issue codes in check order.
	Issues []string `json:"issues"`
}

// HasIssue reports whether the result contains the given issue code.
func (p *PageResult) HasIssue(code string) bool {
	for _, issue := range p.Issues {
		if issue == code {
			return true
		}
	}
	return false
}

// AuditResult is the aggregate outcome of one completed crawl.
//
// Design decision: RawPages carries the fetched pages between pipeline
// steps but is excluded from JSON. Serialized audit records only contain
// the evaluated PageResults, which keeps stored audits small.
type AuditResult struct {
	// URL is the root URL the audit started from.
	URL string `json:"url"`

	// PagesCrawled is the number of pages fetched, always equal to
	// len(Pages).
	PagesCrawled int `json:"pages_crawled"`

	// Summary contains the aggregate issue counters.
	Summary AuditSummary `json:"summary"`

	// Pages holds one PageResult per crawled URL in discovery order:
	// the root page first, then navigation links in extraction order.
	Pages []*PageResult `json:"pages"`

	// CompletedAt is when the crawl and analysis finished.
	CompletedAt time.Time `json:"completed_at"`

	// RawPages holds the fetched pages in discovery order.
	// Populated by the crawl step and consumed by the analyze step.
	RawPages []*Page `json:"-"`
}

// NewAuditResult creates an empty result for the given root URL.
func NewAuditResult(url string) *AuditResult {
	return &AuditResult{
		URL:   url,
		Pages: make([]*PageResult, 0),
	}
}

package model

import "math"

// Page represents a raw fetched page before SEO analysis.
// It holds the response exactly as received so the analyzer can compute
// size and header-based checks without refetching.
type Page struct {
	// URL is the absolute URL that was requested.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	// It is 0 when the fetch failed before a response was received.
	StatusCode int `json:"status_code"`

	// Headers contains all HTTP response headers.
	// Keys are canonicalized header names, values are slices of header values.
	Headers map[string][]string `json:"headers,omitempty"`

	// ContentType is the MIME type from the Content-Type header,
	// extracted for convenience.
	ContentType string `json:"content_type,omitempty"`

	// Body is the raw response body, capped by the fetcher's body size limit.
	Body []byte `json:"-"` // Excluded from JSON to keep audit records small

	// FetchError holds the error message when the fetch failed.
	// Empty on success. A page with a non-empty FetchError has StatusCode 0
	// and an empty Body.
	FetchError string `json:"fetch_error,omitempty"`
}

// NewFailedPage returns a Page recording a fetch failure for the given URL.
func NewFailedPage(url string, err error) *Page {
	return &Page{
		URL:        url,
		StatusCode: 0,
		FetchError: err.Error(),
	}
}

// Failed reports whether the fetch for this page failed.
func (p *Page) Failed() bool {
	return p.FetchError != ""
}

// GetHeader returns the first value of the specified header.
// Returns empty string if the header is not present.
// Go's http package canonicalizes header names, so lookups use the
// canonical form.
func (p *Page) GetHeader(name string) string {
	if values, ok := p.Headers[name]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// SizeKB returns the body size in kilobytes, rounded to two decimals.
func (p *Page) SizeKB() float64 {
	return RoundKB(len(p.Body))
}

// RoundKB converts a byte count to kilobytes rounded to two decimals.
func RoundKB(bytes int) float64 {
	return math.Round(float64(bytes)/1024*100) / 100
}

package model

// AuditSummary contains aggregate counters over a crawl's PageResults.
// It is always derived with Summarize and never mutated independently,
// so the counters cannot drift from the page list they describe.
type AuditSummary struct {
	// MissingTitle is the count of pages flagged MISSING_TITLE.
	MissingTitle int `json:"missing_title"`

	// MissingMetaDescription is the count of pages flagged
	// MISSING_META_DESCRIPTION.
	MissingMetaDescription int `json:"missing_meta_description"`

	// MultipleH1 is the count of pages flagged MULTIPLE_H1.
	MultipleH1 int `json:"multiple_h1"`

	// NoindexPages is the count of pages flagged NOINDEX_DIRECTIVE.
	NoindexPages int `json:"noindex_pages"`

	// Non200Pages is the count of pages flagged NON_200_STATUS.
	Non200Pages int `json:"non_200_pages"`
}

// Summarize reduces a list of PageResults to its summary counters.
//
// Design decision: the summary is a pure reduction over the final page
// list rather than incremental counters kept during the crawl. Concurrent
// fetch completions can therefore never double-count.
func Summarize(pages []*PageResult) AuditSummary {
	var s AuditSummary
	for _, page := range pages {
		if page.HasIssue(IssueMissingTitle) {
			s.MissingTitle++
		}
		if page.HasIssue(IssueMissingMetaDescription) {
			s.MissingMetaDescription++
		}
		if page.HasIssue(IssueMultipleH1) {
			s.MultipleH1++
		}
		if page.HasIssue(IssueNoindexDirective) {
			s.NoindexPages++
		}
		if page.HasIssue(IssueNon200Status) {
			s.Non200Pages++
		}
	}
	return s
}

// TotalIssues returns the number of issues across all pages.
func TotalIssues(pages []*PageResult) int {
	total := 0
	for _, page := range pages {
		total += len(page.Issues)
	}
	return total
}

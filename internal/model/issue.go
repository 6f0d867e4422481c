package model

// Issue codes identify one detected SEO defect on a page.
// The codes are stable string identifiers and form part of the API contract;
// renaming one is a breaking change for consumers.
const (
	// IssueFetchFailed marks a page whose fetch failed before a response
	// was received (network error, timeout, DNS failure).
	IssueFetchFailed = "FETCH_FAILED"

	// IssueMissingTitle marks a page with no title text.
	IssueMissingTitle = "MISSING_TITLE"

	// IssueTitleTooShort marks a title below MinTitleLength characters.
	IssueTitleTooShort = "TITLE_TOO_SHORT"

	// IssueTitleTooLong marks a title above MaxTitleLength characters.
	IssueTitleTooLong = "TITLE_TOO_LONG"

	// IssueMissingMetaDescription marks a page with no meta description.
	IssueMissingMetaDescription = "MISSING_META_DESCRIPTION"

	// IssueMetaDescriptionTooShort marks a description below
	// MinMetaDescriptionLength characters.
	IssueMetaDescriptionTooShort = "META_DESCRIPTION_TOO_SHORT"

	// IssueMetaDescriptionTooLong marks a description above
	// MaxMetaDescriptionLength characters.
	IssueMetaDescriptionTooLong = "META_DESCRIPTION_TOO_LONG"

	// IssueMissingH1 marks a page with no H1 element.
	IssueMissingH1 = "MISSING_H1"

	// IssueMultipleH1 marks a page with more than one H1 element.
	IssueMultipleH1 = "MULTIPLE_H1"

	// IssueMissingCanonical marks a page without a canonical link element.
	IssueMissingCanonical = "MISSING_CANONICAL"

	// IssueNoindexDirective marks a page whose robots meta tag or
	// X-Robots-Tag header contains a noindex directive.
	IssueNoindexDirective = "NOINDEX_DIRECTIVE"

	// IssueNon200Status marks a page that responded with a status other
	// than 200.
	IssueNon200Status = "NON_200_STATUS"
)

// SEO length thresholds in characters, applied to trimmed text.
// These follow common search-engine display limits.
const (
	MinTitleLength = 30
	MaxTitleLength = 60

	MinMetaDescriptionLength = 120
	MaxMetaDescriptionLength = 160
)

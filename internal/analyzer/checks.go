package analyzer

import (
	"net/http"

	"github.com/seoscan/seoscan/internal/model"
)

// titleCheck flags a missing, too-short, or too-long page title.
type titleCheck struct{}

// Name returns the check's name.
func (titleCheck) Name() string { return "title" }

// Check evaluates the title rules. Presence and length are mutually
// exclusive findings: an absent title never also reports a length issue.
func (titleCheck) Check(result *model.PageResult) []string {
	switch {
	case result.TitleLength == 0:
		return []string{model.IssueMissingTitle}
	case result.TitleLength < model.MinTitleLength:
		return []string{model.IssueTitleTooShort}
	case result.TitleLength > model.MaxTitleLength:
		return []string{model.IssueTitleTooLong}
	}
	return nil
}

// metaDescriptionCheck flags a missing, too-short, or too-long meta
// description.
type metaDescriptionCheck struct{}

// Name returns the check's name.
func (metaDescriptionCheck) Name() string { return "meta-description" }

// Check evaluates the meta description rules.
func (metaDescriptionCheck) Check(result *model.PageResult) []string {
	switch {
	case result.MetaDescriptionLength == 0:
		return []string{model.IssueMissingMetaDescription}
	case result.MetaDescriptionLength < model.MinMetaDescriptionLength:
		return []string{model.IssueMetaDescriptionTooShort}
	case result.MetaDescriptionLength > model.MaxMetaDescriptionLength:
		return []string{model.IssueMetaDescriptionTooLong}
	}
	return nil
}

// headingCheck flags pages without exactly one h1 element.
type headingCheck struct{}

// Name returns the check's name.
func (headingCheck) Name() string { return "heading" }

// Check evaluates the h1 rules.
func (headingCheck) Check(result *model.PageResult) []string {
	switch {
	case result.H1Count == 0:
		return []string{model.IssueMissingH1}
	case result.H1Count > 1:
		return []string{model.IssueMultipleH1}
	}
	return nil
}

// canonicalCheck flags pages without a canonical link element.
type canonicalCheck struct{}

// Name returns the check's name.
func (canonicalCheck) Name() string { return "canonical" }

// Check evaluates the canonical rule. Only presence matters; the target
// URL of the canonical tag is reported but not validated.
func (canonicalCheck) Check(result *model.PageResult) []string {
	if !result.CanonicalPresent {
		return []string{model.IssueMissingCanonical}
	}
	return nil
}

// robotsCheck flags pages carrying a noindex directive.
type robotsCheck struct{}

// Name returns the check's name.
func (robotsCheck) Name() string { return "robots" }

// Check evaluates the noindex rule.
func (robotsCheck) Check(result *model.PageResult) []string {
	if result.Noindex {
		return []string{model.IssueNoindexDirective}
	}
	return nil
}

// statusCheck flags pages that answered with anything other than 200 OK.
type statusCheck struct{}

// Name returns the check's name.
func (statusCheck) Name() string { return "status" }

// Check evaluates the HTTP status rule. Redirect statuses can surface
// here when the final hop of a followed redirect chain is itself non-200.
func (statusCheck) Check(result *model.PageResult) []string {
	if result.StatusCode != http.StatusOK {
		return []string{model.IssueNon200Status}
	}
	return nil
}

// Package analyzer evaluates fetched pages against the SEO rule set.
//
// The Analyzer extracts the page's SEO-relevant metrics (title, meta
// description, headings, canonical tag, robots directives, size, internal
// links) and then runs a fixed, ordered list of checks over them. Each
// check contributes zero or more issue codes to the result.
//
// Analysis is pure computation over an already-fetched page: the package
// holds no shared mutable state and is safe to invoke concurrently for
// independent pages.
package analyzer

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/seoscan/seoscan/internal/crawler"
	"github.com/seoscan/seoscan/internal/model"
)

// Check evaluates one SEO rule against a page's extracted metrics.
//
// Design decision: checks operate on the populated PageResult rather than
// the raw DOM because:
//  1. Metrics are extracted once in a single parse pass
//  2. Checks stay trivial to unit-test with literal structs
//  3. New checks cannot accidentally re-measure differently
type Check interface {
	// Name returns the check's name for logging.
	Name() string

	// Check returns the issue codes this rule detects, in a stable order.
	Check(result *model.PageResult) []string
}

// Analyzer runs the registered checks over fetched pages.
type Analyzer struct {
	// checks is the ordered list of rules to apply.
	checks []Check

	// logger is used for per-page debug logging.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer with all built-in checks registered in their
// canonical order. The order determines the order of issue codes in
// every PageResult.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		checks: make([]Check, 0),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	a.Register(titleCheck{})
	a.Register(metaDescriptionCheck{})
	a.Register(headingCheck{})
	a.Register(canonicalCheck{})
	a.Register(robotsCheck{})
	a.Register(statusCheck{})

	return a
}

// Register appends a check to the rule list.
func (a *Analyzer) Register(c Check) {
	a.checks = append(a.checks, c)
}

// AnalyzePage evaluates a single fetched page and returns its PageResult.
//
// A page whose fetch failed is returned immediately with the sentinel
// status 0 and a single FETCH_FAILED issue; no rules run for it. For any
// received HTTP status the full rule set applies, so a 404 page still
// reports its missing title alongside NON_200_STATUS.
func (a *Analyzer) AnalyzePage(page *model.Page, base *url.URL) *model.PageResult {
	if page.Failed() {
		a.logger.Debug("skipping analysis for failed fetch",
			"url", page.URL,
			"fetch_error", page.FetchError,
		)
		return &model.PageResult{
			URL:        page.URL,
			StatusCode: 0,
			Issues:     []string{model.IssueFetchFailed},
		}
	}

	result := a.extractMetrics(page, base)

	issues := make([]string, 0)
	for _, check := range a.checks {
		issues = append(issues, check.Check(result)...)
	}
	result.Issues = issues

	a.logger.Debug("page analyzed",
		"url", page.URL,
		"status", page.StatusCode,
		"issues", len(issues),
	)

	return result
}

// extractMetrics parses the page body and populates all measured fields.
// Lengths are rune counts of the trimmed text, computed even when the
// corresponding length checks fire, so a result always reports measured
// lengths alongside presence.
func (a *Analyzer) extractMetrics(page *model.Page, base *url.URL) *model.PageResult {
	result := &model.PageResult{
		URL:        page.URL,
		StatusCode: page.StatusCode,
		PageSizeKB: page.SizeKB(),
	}

	doc, err := crawler.ParseDocument(bytes.NewReader(page.Body))
	if err != nil {
		// x/net/html only fails on reader errors, which cannot happen
		// with a bytes reader; guard anyway and evaluate an empty page.
		a.logger.Warn("failed to parse page", "url", page.URL, "error", err)
		return result
	}

	if title := doc.FindFirst("title"); title != nil {
		result.Title = crawler.Text(title)
		result.TitleLength = utf8.RuneCountInString(result.Title)
	}

	result.MetaDescription = metaDescription(doc)
	result.MetaDescriptionLength = utf8.RuneCountInString(result.MetaDescription)

	for _, h1 := range doc.FindAll("h1") {
		result.H1Count++
		result.H1Texts = append(result.H1Texts, crawler.Text(h1))
	}

	if canonical := canonicalLink(doc); canonical != nil {
		result.CanonicalPresent = true
		result.CanonicalURL = crawler.Attr(canonical, "href")
	}

	result.Noindex = hasNoindex(doc, page)
	result.InternalLinks = crawler.CountInternalLinks(doc, base)

	return result
}

// metaDescription returns the trimmed content of the first
// name="description" meta tag. The first such tag decides the outcome
// even when its content is empty; og:description is a fallback only for
// pages with no name="description" tag at all.
func metaDescription(doc *crawler.Document) string {
	var ogFallback string
	for _, meta := range doc.FindAll("meta") {
		if strings.EqualFold(crawler.Attr(meta, "name"), "description") {
			return strings.TrimSpace(crawler.Attr(meta, "content"))
		}
		if ogFallback == "" && strings.EqualFold(crawler.Attr(meta, "property"), "og:description") {
			ogFallback = strings.TrimSpace(crawler.Attr(meta, "content"))
		}
	}
	return ogFallback
}

// canonicalLink returns the first <link> whose rel tokens include
// "canonical", or nil.
func canonicalLink(doc *crawler.Document) *html.Node {
	for _, link := range doc.FindAll("link") {
		for _, token := range strings.Fields(crawler.Attr(link, "rel")) {
			if strings.EqualFold(token, "canonical") {
				return link
			}
		}
	}
	return nil
}

// hasNoindex reports whether the robots meta tag or the X-Robots-Tag
// response header contains a noindex directive.
func hasNoindex(doc *crawler.Document, page *model.Page) bool {
	for _, meta := range doc.FindAll("meta") {
		if strings.EqualFold(crawler.Attr(meta, "name"), "robots") {
			if strings.Contains(strings.ToLower(crawler.Attr(meta, "content")), "noindex") {
				return true
			}
		}
	}
	return strings.Contains(strings.ToLower(page.GetHeader("X-Robots-Tag")), "noindex")
}

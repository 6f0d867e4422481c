package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/seoscan/seoscan/internal/urlutil"
)

// navVocabulary contains the class/id substrings that mark a generic
// container as navigation-related.
var navVocabulary = []string{"nav", "menu", "header", "navigation"}

// strategy locates one candidate navigation container in a document.
// A nil return means the strategy found nothing.
type strategy struct {
	// name identifies the strategy for logging and debugging.
	name string

	// find returns the winning container, or nil.
	find func(doc *Document) *html.Node
}

// strategies is the fixed cascade, in priority order. The first strategy
// that yields a container wins; later strategies are never consulted.
//
// Design decision: an ordered list of container-returning functions
// evaluated short-circuit, rather than a type hierarchy. Adding a strategy
// is appending an entry.
var strategies = []strategy{
	{
		name: "nav-element",
		find: func(doc *Document) *html.Node {
			return doc.FindFirst("nav")
		},
	},
	{
		name: "header-element",
		find: func(doc *Document) *html.Node {
			return doc.FindFirst("header")
		},
	},
	{
		name: "nav-class-or-id",
		find: findByNavVocabulary,
	},
	{
		name: "first-list",
		find: func(doc *Document) *html.Node {
			return doc.FindFirst("ul")
		},
	},
}

// findByNavVocabulary returns the first div or list container whose class
// or id attribute contains one of the navigation vocabulary terms,
// matched case-insensitively as a substring.
func findByNavVocabulary(doc *Document) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "div" || n.Data == "ul" || n.Data == "ol") {
			marker := strings.ToLower(Attr(n, "class") + " " + Attr(n, "id"))
			for _, term := range navVocabulary {
				if strings.Contains(marker, term) {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.Root())
	return found
}

// NavigationExtractor locates the main navigation container of a document
// and collects its links.
type NavigationExtractor struct {
	// base is the URL of the page being parsed, used for resolving and
	// domain-filtering hrefs.
	base *url.URL
}

// NewNavigationExtractor creates an extractor for pages under the given
// base URL.
func NewNavigationExtractor(base *url.URL) *NavigationExtractor {
	return &NavigationExtractor{base: base}
}

// Extract runs the strategy cascade over the document and returns the
// navigation links as normalized, same-domain absolute URLs in document
// order with duplicates removed. The result is empty when no strategy
// finds a container, or when the selected container has no anchors.
//
// A selected container with zero anchors does not fall through to the
// next strategy. That is a documented heuristic limitation: the cascade
// identifies the most plausible menu container, not the most link-rich one.
func (e *NavigationExtractor) Extract(doc *Document) []string {
	container := e.selectContainer(doc)
	if container == nil {
		return []string{}
	}
	return e.collectLinks(container)
}

// selectContainer evaluates the cascade and returns the winning container,
// or nil if every strategy comes up empty.
func (e *NavigationExtractor) selectContainer(doc *Document) *html.Node {
	for _, s := range strategies {
		if container := s.find(doc); container != nil {
			return container
		}
	}
	return nil
}

// collectLinks extracts the anchors nested in the container and filters
// them through the link normalizer. Links outside the container are never
// considered; the cascade already scoped selection to one element.
func (e *NavigationExtractor) collectLinks(container *html.Node) []string {
	set := urlutil.NewLinkSet()
	for _, anchor := range FindAllWithin(container, "a") {
		href := Attr(anchor, "href")
		if normalized, ok := urlutil.Normalize(href, e.base); ok {
			set.Add(normalized)
		}
	}
	return set.URLs()
}

// CountInternalLinks runs every anchor in the document through the link
// normalizer and counts the accepted ones. Used for the per-page internal
// link metric; this reuses the link filter, not the navigation cascade.
func CountInternalLinks(doc *Document, base *url.URL) int {
	count := 0
	for _, anchor := range doc.FindAll("a") {
		if _, ok := urlutil.Normalize(Attr(anchor, "href"), base); ok {
			count++
		}
	}
	return count
}

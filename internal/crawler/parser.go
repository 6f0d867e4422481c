package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. Standard library extension, well-maintained
type Document struct {
	root *html.Node
}

// ParseDocument parses HTML content into a Document.
// x/net/html is forgiving, so this only fails on reader errors.
func ParseDocument(content io.Reader) (*Document, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// FindFirst returns the first element with the given tag name in document
// order, or nil if none exists.
func (d *Document) FindFirst(tag string) *html.Node {
	return findFirst(d.root, tag)
}

// FindAll returns all elements with the given tag name in document order.
func (d *Document) FindAll(tag string) []*html.Node {
	return FindAllWithin(d.root, tag)
}

// findFirst walks the tree depth-first and returns the first element
// matching tag.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAllWithin returns all elements matching tag nested under n,
// including n itself, in document order.
func FindAllWithin(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// Attr returns the value of the named attribute on n, or empty string.
// Attribute names are matched case-insensitively per the HTML spec.
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

// Text returns the concatenated text content of n and its descendants
// with surrounding whitespace trimmed.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

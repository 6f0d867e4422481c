// Package urlutil provides link filtering and normalization for crawling.
//
// The central operation is Normalize: given a raw href and the page's base
// URL it either produces a canonical same-domain absolute URL or rejects
// the href. LinkSet builds ordered, deduplicated collections of the
// accepted URLs.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize converts a candidate href into a canonical absolute URL
// relative to base. The second return value is false when the href is
// rejected.
//
// Rejection rules:
//   - empty href, or a pure fragment ("#...")
//   - non-navigational schemes (javascript:, mailto:, tel:, data:)
//   - the resolved URL is not http or https
//   - the resolved host differs from the base host
//
// Accepted URLs have their fragment stripped, scheme and host lowercased,
// and an empty path normalized to "/" so that "http://a.com" and
// "http://a.com/" deduplicate to the same entry.
//
// Pure function of (href, base); no side effects.
func Normalize(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if !SameHost(resolved, base) {
		return "", false
	}

	resolved.Fragment = ""
	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)
	if resolved.Path == "" {
		resolved.Path = "/"
	}

	return resolved.String(), true
}

// SameHost reports whether two URLs share the same host,
// compared case-insensitively and including any port.
// Subdomains are treated as different hosts.
func SameHost(u, base *url.URL) bool {
	return strings.EqualFold(u.Host, base.Host)
}

// IsHTTP reports whether the URL uses the http or https scheme.
func IsHTTP(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// LinkSet is an ordered set of URLs. Duplicates collapse in
// first-seen order.
type LinkSet struct {
	seen map[string]struct{}
	urls []string
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{
		seen: make(map[string]struct{}),
		urls: make([]string, 0),
	}
}

// Add inserts a URL, returning true if it was not already present.
func (s *LinkSet) Add(u string) bool {
	if _, ok := s.seen[u]; ok {
		return false
	}
	s.seen[u] = struct{}{}
	s.urls = append(s.urls, u)
	return true
}

// Contains reports whether the URL is in the set.
func (s *LinkSet) Contains(u string) bool {
	_, ok := s.seen[u]
	return ok
}

// URLs returns the set contents in insertion order.
func (s *LinkSet) URLs() []string {
	return s.urls
}

// Len returns the number of URLs in the set.
func (s *LinkSet) Len() int {
	return len(s.urls)
}

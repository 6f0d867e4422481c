// Package crawler fetches pages and extracts structure from their HTML.
//
// It contains three collaborating pieces:
//
//   - Fetcher performs single-page HTTP fetches with a per-request timeout,
//     a response body size cap, and an optional politeness rate limiter.
//     Fetches for independent URLs are safe to run concurrently.
//
//   - Document wraps a parsed HTML tree and exposes the small query surface
//     the rest of SEOScan needs: find-first-by-tag, find-all-within-a-node,
//     attribute reads, and text extraction.
//
//   - NavigationExtractor locates the site's main navigation container via
//     an ordered strategy cascade and collects its links as normalized,
//     same-domain, deduplicated absolute URLs.
//
// The package deliberately knows nothing about SEO rules; evaluation lives
// in the analyzer package.
package crawler

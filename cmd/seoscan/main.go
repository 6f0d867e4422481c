// Package main provides the entry point for the SEOScan CLI.
//
// SEOScan audits websites for common SEO issues. It crawls a root page
// and the pages linked from its navigation menu, then checks each page
// for title, meta description, heading, canonical, and indexability
// problems.
//
// Usage:
//
//	seoscan audit https://example.com
//	seoscan serve --addr :8080
//
// See --help for all available options.
package main

// main is the entry point for SEOScan.
func main() {
	Execute()
}

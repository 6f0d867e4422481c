// Package report renders audit results for humans and tools.
//
// Three formats are provided: a plain-text report for terminals, JSON for
// programmatic consumption, and GitHub-flavored Markdown for sharing. All
// writers implement the Writer interface, and MultiWriter fans one result
// out to several destinations.
package report

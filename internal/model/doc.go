// Package model defines the core data structures shared across SEOScan.
//
// The central types are:
//   - Audit: one audit run tracked by id and lifecycle status
//   - AuditResult: the aggregate outcome of a completed crawl
//   - PageResult: the SEO evaluation of a single page
//   - AuditSummary: counters derived from a set of PageResults
//   - Page: a raw fetched page before analysis
//
// All types in this package are plain data with small helper methods.
// They carry no behavior that touches the network or storage, which keeps
// them easy to construct in tests.
package model

// Package pipeline composes the audit workflow from discrete steps.
//
// A Pipeline runs an ordered list of Steps over a shared AuditResult:
// crawl fetches the root page and its navigation targets, analyze
// evaluates each fetched page, and summarize computes the aggregate
// counters. The BatchProcessor runs independent pipelines over many root
// URLs concurrently.
package pipeline

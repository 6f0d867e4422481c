package model

import "time"

// AuditStatus is the lifecycle state of an audit.
type AuditStatus string

// Audit lifecycle states. The only legal transitions are
// pending -> running -> completed and pending -> running -> failed.
// Completed and failed are terminal.
const (
	StatusPending   AuditStatus = "pending"
	StatusRunning   AuditStatus = "running"
	StatusCompleted AuditStatus = "completed"
	StatusFailed    AuditStatus = "failed"
)

// Terminal reports whether the status is a terminal state.
func (s AuditStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether the status is one of the known lifecycle states.
func (s AuditStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Audit is one full crawl-and-analyze run for one root URL.
//
// Invariant: exactly one of Results and Error is set once the status is
// terminal; both are empty while pending or running. The orchestrator is
// the only writer and mutates an audit exactly twice.
type Audit struct {
	// ID is the opaque unique identifier assigned at creation.
	ID string `json:"audit_id"`

	// URL is the root URL being audited.
	URL string `json:"url"`

	// Status is the current lifecycle state.
	Status AuditStatus `json:"status"`

	// CreatedAt is when the audit was requested.
	CreatedAt time.Time `json:"created_at"`

	// Results holds the crawl outcome. Set iff Status is completed.
	Results *AuditResult `json:"results,omitempty"`

	// Error holds a human-readable failure message. Set iff Status is failed.
	Error string `json:"error,omitempty"`
}

// NewAudit creates a pending audit for the given URL.
func NewAudit(id, url string) *Audit {
	return &Audit{
		ID:        id,
		URL:       url,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Clone returns a copy of the audit safe to hand to readers while the
// orchestrator may still mutate the original. The Results pointer is
// shared: an AuditResult is immutable once attached.
func (a *Audit) Clone() *Audit {
	clone := *a
	return &clone
}

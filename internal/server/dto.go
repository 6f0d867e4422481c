package server

// StartAuditRequest is the body of POST /audit.
type StartAuditRequest struct {
	// URL is the absolute root URL to audit. Must use http or https.
	URL string `json:"url" example:"https://example.com" doc:"Absolute root URL to audit"`
}

// StartAuditResponse acknowledges an accepted audit. The audit itself
// runs asynchronously; poll GET /audit/{audit_id} for progress.
type StartAuditResponse struct {
	AuditID string `json:"audit_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status  string `json:"status" example:"started" enum:"started"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

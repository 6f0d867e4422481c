package audit

import "errors"

// Sentinel errors for audit management.
// Callers use errors.Is() to map these onto transport-level responses,
// e.g. the HTTP API turns ErrInvalidURL into 400 and ErrNotFound into 404.
var (
	// ErrInvalidURL is returned when the requested root URL is not an
	// absolute http or https URL.
	ErrInvalidURL = errors.New("invalid root URL: must be an absolute http or https URL")

	// ErrNotFound is returned when no audit exists for the given ID.
	ErrNotFound = errors.New("audit not found")
)

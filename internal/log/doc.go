// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// Audited pages can set cookies and expose authentication headers, and
// those values end up as log attributes in verbose mode. The
// SecureHandler masks them before they reach the output:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Secret values detected by pattern matching (passwords, tokens, keys)
//   - Session identifiers and authentication tokens
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("page fetched",
//	    "set-cookie", "session=abc123",  // Will be masked
//	    "url", "https://example.com",
//	)
//
//	slog.SetDefault(logger)
package log

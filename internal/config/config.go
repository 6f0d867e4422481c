package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to be polite to audited sites while keeping
// audits fast enough for interactive use.
const (
	// DefaultTimeout is set to 30 seconds. Individual slow pages are
	// reported as fetch failures rather than stalling the whole audit.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds simultaneous page fetches within one audit.
	// Navigation menus rarely exceed a few dozen links, so 8 concurrent
	// fetches finish quickly without hammering the target server.
	DefaultConcurrency = 8

	// DefaultBatchSize is the number of concurrent audits when processing
	// multiple root URLs from the CLI. Whole-audit concurrency multiplies
	// with per-audit fetch concurrency, so this stays small.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies SEOScan in HTTP requests.
	// A descriptive User-Agent lets site operators identify audit traffic
	// in their logs.
	DefaultUserAgent = "Mozilla/5.0 (compatible; SEOScanBot/1.0; +https://github.com/seoscan/seoscan)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for any reasonable HTML page while preventing
	// memory exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultListenAddr is the HTTP API listen address for serve mode.
	DefaultListenAddr = ":8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "seoscan"
)

// Config holds all configuration options for SEOScan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Targets is the list of root URLs to audit.
	// Must contain at least one absolute http or https URL.
	Targets []string

	// Timeout is the per-request timeout for page fetches.
	// This applies to individual fetches, not the overall audit duration.
	Timeout time.Duration

	// Concurrency bounds simultaneous page fetches within one audit.
	Concurrency int

	// BatchSize is the number of concurrent audits when processing
	// multiple root URLs.
	BatchSize int

	// RateLimit caps page fetches per second across one audit.
	// Zero disables pacing.
	RateLimit float64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .seoscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// ListenAddr is the HTTP API listen address for serve mode.
	ListenAddr string

	// DBDir is the directory path for storing the SQLite database.
	// When set, audits are persisted for later retrieval.
	// When empty, serve mode keeps audits in memory only.
	// The serve command defaults this to XDGDataDir
	// (~/.local/share/seoscan on Linux); serve --memory clears it.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, listen
// address). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		BatchSize:   DefaultBatchSize,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		ListenAddr:  DefaultListenAddr,
	}
}

// XDGDataDir returns the XDG data directory for SEOScan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/seoscan
// On macOS: ~/Library/Application Support/seoscan
// On Windows: %LOCALAPPDATA%\seoscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for SEOScan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any auditing begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".seoscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// CrawlSettings holds crawl options loaded from the configuration file.
// Zero values mean "not set" and leave the corresponding Config field
// untouched.
type CrawlSettings struct {
	// TimeoutSeconds overrides the per-request fetch timeout.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// Concurrency overrides the per-audit fetch concurrency.
	Concurrency int `yaml:"concurrency,omitempty"`

	// BatchSize overrides the number of concurrent audits.
	BatchSize int `yaml:"batchSize,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// RateLimit caps page fetches per second.
	RateLimit float64 `yaml:"rateLimit,omitempty"`

	// MaxBodySize overrides the response body size cap in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`
}

// ServerSettings holds serve-mode options loaded from the configuration file.
type ServerSettings struct {
	// Addr overrides the HTTP API listen address.
	Addr string `yaml:"addr,omitempty"`

	// DBDir overrides the SQLite database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// File represents the structure of the .seoscan configuration file.
type File struct {
	// Crawl contains crawl option overrides.
	Crawl CrawlSettings `yaml:"crawl,omitempty"`

	// Server contains serve-mode option overrides.
	Server ServerSettings `yaml:"server,omitempty"`
}

// Apply copies the file's set values onto the config.
// Unset (zero) values leave the config untouched, so CLI flag defaults
// survive and explicit flags can still override afterwards.
func (cf *File) Apply(c *Config) {
	if cf.Crawl.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(cf.Crawl.TimeoutSeconds) * time.Second
	}
	if cf.Crawl.Concurrency > 0 {
		c.Concurrency = cf.Crawl.Concurrency
	}
	if cf.Crawl.BatchSize > 0 {
		c.BatchSize = cf.Crawl.BatchSize
	}
	if cf.Crawl.UserAgent != "" {
		c.UserAgent = cf.Crawl.UserAgent
	}
	if cf.Crawl.RateLimit > 0 {
		c.RateLimit = cf.Crawl.RateLimit
	}
	if cf.Crawl.MaxBodySize > 0 {
		c.MaxBodySize = cf.Crawl.MaxBodySize
	}
	if cf.Server.Addr != "" {
		c.ListenAddr = cf.Server.Addr
	}
	if cf.Server.DBDir != "" {
		c.DBDir = cf.Server.DBDir
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .seoscan in the current directory
// 3. Look for .seoscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

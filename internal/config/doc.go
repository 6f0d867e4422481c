// Package config provides configuration management for SEOScan.
package config

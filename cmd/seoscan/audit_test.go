package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/model"
)

// newAuditTarget starts a small site with a navigation menu.
func newAuditTarget(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Home</title></head><body>
			<nav><ul><li><a href="/about">About</a></li></ul></nav>
			<h1>Home</h1>
		</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>About</title></head><body><h1>About</h1></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestBuildAuditConfig tests flag and config file precedence.
func TestBuildAuditConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := NewAuditCmd()

		cfg, err := buildAuditConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("build config: %v", err)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("timeout: got %v, want %v", cfg.Timeout, config.DefaultTimeout)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("concurrency: got %d, want %d", cfg.Concurrency, config.DefaultConcurrency)
		}
		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.com" {
			t.Errorf("targets: got %v", cfg.Targets)
		}
	})

	t.Run("config file applies", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".seoscan")
		content := "crawl:\n  timeoutSeconds: 7\n  concurrency: 3\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cmd := NewAuditCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("set config flag: %v", err)
		}

		cfg, err := buildAuditConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("build config: %v", err)
		}
		if cfg.Timeout != 7*time.Second {
			t.Errorf("timeout: got %v, want 7s", cfg.Timeout)
		}
		if cfg.Concurrency != 3 {
			t.Errorf("concurrency: got %d, want 3", cfg.Concurrency)
		}
	})

	t.Run("explicit flags beat config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".seoscan")
		if err := os.WriteFile(path, []byte("crawl:\n  concurrency: 3\n"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cmd := NewAuditCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("set config flag: %v", err)
		}
		if err := cmd.Flags().Set("concurrency", "5"); err != nil {
			t.Fatalf("set concurrency flag: %v", err)
		}

		cfg, err := buildAuditConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("build config: %v", err)
		}
		if cfg.Concurrency != 5 {
			t.Errorf("concurrency: got %d, want 5", cfg.Concurrency)
		}
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		cmd := NewAuditCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
			t.Fatalf("set config flag: %v", err)
		}

		if _, err := buildAuditConfig(cmd, []string{"https://example.com"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestAuditCmdEndToEnd tests the audit command against a local site with
// a JSON report written to a file.
func TestAuditCmdEndToEnd(t *testing.T) {
	target := newAuditTarget(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	root := NewRootCmd()
	root.SetArgs([]string{"audit", "--json", "-o", outPath, target.URL})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var result model.AuditResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if result.PagesCrawled != 2 {
		t.Errorf("pages crawled: got %d, want 2", result.PagesCrawled)
	}
	if result.URL != target.URL {
		t.Errorf("url: got %q, want %q", result.URL, target.URL)
	}
}

// TestAuditCmdNoTargets tests that missing targets fail validation.
func TestAuditCmdNoTargets(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"audit"})

	if err := root.Execute(); err == nil {
		t.Error("expected error when no targets are given")
	}
}

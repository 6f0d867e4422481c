package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/database"
	"github.com/seoscan/seoscan/internal/model"
)

// seedHistoryDB creates a database with two completed audits for one
// URL and one for another.
func seedHistoryDB(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	ctx := context.Background()
	records := []struct {
		id, url string
		created time.Time
	}{
		{"audit-1", "https://example.com", time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)},
		{"audit-2", "https://example.com", time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)},
		{"audit-3", "https://example.org", time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)},
	}
	for _, r := range records {
		a := model.NewAudit(r.id, r.url)
		a.CreatedAt = r.created
		a.Status = model.StatusCompleted
		a.Results = &model.AuditResult{
			URL:          r.url,
			PagesCrawled: 3,
			Pages: []*model.PageResult{
				{URL: r.url, StatusCode: 200, Issues: []string{model.IssueMissingTitle}},
			},
		}
		if err := db.Create(ctx, a); err != nil {
			t.Fatalf("create audit %s: %v", r.id, err)
		}
	}

	return dir
}

// runHistory executes the history command and returns its output.
func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewHistoryCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestHistoryCmd tests listing persisted audits.
func TestHistoryCmd(t *testing.T) {
	t.Run("lists audited urls", func(t *testing.T) {
		dir := seedHistoryDB(t)

		out, err := runHistory(t, "--db", dir)
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		for _, want := range []string{
			"Audited root URLs (2):",
			"https://example.com",
			"https://example.org",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("lists audits for one url newest first", func(t *testing.T) {
		dir := seedHistoryDB(t)

		out, err := runHistory(t, "--db", dir, "https://example.com")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		for _, want := range []string{
			"Audits for https://example.com (2):",
			"audit-1",
			"audit-2",
			"3 pages, 1 issues",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if strings.Index(out, "audit-2") > strings.Index(out, "audit-1") {
			t.Errorf("audits must be newest first:\n%s", out)
		}
		if strings.Contains(out, "audit-3") {
			t.Errorf("other urls must not appear:\n%s", out)
		}
	})

	t.Run("unknown url reports no audits", func(t *testing.T) {
		dir := seedHistoryDB(t)

		out, err := runHistory(t, "--db", dir, "https://unknown.example")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if !strings.Contains(out, "No audits recorded for") {
			t.Errorf("output missing empty-history message:\n%s", out)
		}
	})

	t.Run("missing database is an error", func(t *testing.T) {
		_, err := runHistory(t, "--db", t.TempDir())
		if err == nil {
			t.Fatal("expected error for missing database")
		}
		if !strings.Contains(err.Error(), "no audit history") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/model"
)

func sampleResult() *model.AuditResult {
	return &model.AuditResult{
		URL:          "https://example.com",
		PagesCrawled: 3,
		Summary: model.AuditSummary{
			MissingTitle:           1,
			MissingMetaDescription: 2,
			NoindexPages:           1,
			Non200Pages:            1,
		},
		Pages: []*model.PageResult{
			{
				URL:         "https://example.com/",
				StatusCode:  200,
				Title:       "Example home page with a descriptive title",
				TitleLength: 42,
				H1Count:     1,
				PageSizeKB:  3.14,
				Issues:      []string{model.IssueMissingMetaDescription},
			},
			{
				URL:        "https://example.com/private",
				StatusCode: 200,
				Noindex:    true,
				Issues: []string{
					model.IssueMissingTitle,
					model.IssueMissingMetaDescription,
					model.IssueNoindexDirective,
				},
			},
			{
				URL:        "https://example.com/gone",
				StatusCode: 404,
				Issues:     []string{model.IssueNon200Status},
			},
		},
		CompletedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

// TestHumanizeIssue tests issue code display formatting.
func TestHumanizeIssue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{model.IssueMissingTitle, "Missing Title"},
		{model.IssueMissingMetaDescription, "Missing Meta Description"},
		{model.IssueMultipleH1, "Multiple H1"},
		{model.IssueNon200Status, "Non 200 Status"},
	}
	for _, tt := range tests {
		if got := HumanizeIssue(tt.code); got != tt.want {
			t.Errorf("HumanizeIssue(%q): got %q, want %q", tt.code, got, tt.want)
		}
	}
}

// TestSimpleWriter tests the plain-text format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders summary and pages", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		n, err := NewSimpleWriter(&buf).Write(sampleResult())
		if err != nil {
			t.Fatalf("write: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("byte count: got %d, want %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"SEOSCAN AUDIT REPORT",
			"https://example.com",
			"Pages Crawled:  3",
			"Missing meta descriptions: 2",
			"TOTAL: 5 issues across 3 pages",
			"Missing Title, Missing Meta Description, Noindex Directive",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("marks fetch failures", func(t *testing.T) {
		t.Parallel()

		result := &model.AuditResult{
			URL:          "https://down.example",
			PagesCrawled: 1,
			Pages: []*model.PageResult{
				{URL: "https://down.example", StatusCode: 0, Issues: []string{model.IssueFetchFailed}},
			},
		}

		var buf strings.Builder
		if _, err := NewSimpleWriter(&buf).Write(result); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !strings.Contains(buf.String(), "(fetch failed)") {
			t.Errorf("output missing fetch failure marker:\n%s", buf.String())
		}
	})

	t.Run("verbose adds page metrics", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(sampleResult()); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !strings.Contains(buf.String(), "(42 chars)") {
			t.Errorf("verbose output missing title length:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded model.AuditResult
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.PagesCrawled != 3 {
		t.Errorf("pages crawled: got %d", decoded.PagesCrawled)
	}
	if decoded.Summary.MissingMetaDescription != 2 {
		t.Errorf("summary: %+v", decoded.Summary)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("output must end with a newline")
	}
}

// TestMarkdownWriter tests the Markdown format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	if _, err := NewMarkdownWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# SEOScan Audit Report",
		"## Issue Summary",
		"## Pages",
		"`https://example.com`",
		"pie",
		"Missing Meta Description",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestMultiWriter tests fan-out to several destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, jsonBuf strings.Builder
	mw := NewMultiWriter(
		NewSimpleWriter(&text),
		NewJSONWriter(&jsonBuf),
	)

	if _, err := mw.Write(sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if text.Len() == 0 || jsonBuf.Len() == 0 {
		t.Errorf("both writers must receive output: text=%d json=%d", text.Len(), jsonBuf.Len())
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showHealthy controls whether pages without issues are listed.
	showHealthy bool

	// verbose enables additional per-page detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowHealthy configures the writer to list pages without issues.
func WithShowHealthy(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showHealthy = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:  newBaseWriter(output),
		showHealthy: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the audit result in human-readable format.
func (w *SimpleWriter) Write(result *model.AuditResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writePages(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.AuditResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SEOSCAN AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Root URL:       %s\n", result.URL))
	if !result.CompletedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Completed:      %s\n", result.CompletedAt.Format("2006-01-02 15:04:05 MST")))
	}
	sb.WriteString(fmt.Sprintf("Pages Crawled:  %d\n", result.PagesCrawled))
	sb.WriteString("\n")
}

// writeSummary writes the aggregate issue counters.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.AuditResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ISSUE SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	s := result.Summary
	sb.WriteString(fmt.Sprintf("  Missing titles:            %d\n", s.MissingTitle))
	sb.WriteString(fmt.Sprintf("  Missing meta descriptions: %d\n", s.MissingMetaDescription))
	sb.WriteString(fmt.Sprintf("  Multiple H1 headings:      %d\n", s.MultipleH1))
	sb.WriteString(fmt.Sprintf("  Noindex pages:             %d\n", s.NoindexPages))
	sb.WriteString(fmt.Sprintf("  Non-200 pages:             %d\n", s.Non200Pages))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL: %d issues across %d pages\n", model.TotalIssues(result.Pages), result.PagesCrawled))
	sb.WriteString("\n")
}

// writePages writes the per-page findings.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.AuditResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for i, page := range result.Pages {
		if len(page.Issues) == 0 && !w.showHealthy {
			continue
		}
		w.writePage(sb, i+1, page)
	}
}

// writePage writes one page entry.
func (w *SimpleWriter) writePage(sb *strings.Builder, index int, page *model.PageResult) {
	if page.StatusCode == 0 {
		sb.WriteString(fmt.Sprintf("[%d] %s (fetch failed)\n", index, page.URL))
	} else {
		sb.WriteString(fmt.Sprintf("[%d] %s (%d, %.2f KB)\n", index, page.URL, page.StatusCode, page.PageSizeKB))
	}

	if w.verbose && page.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf("    Title:            %q (%d chars)\n", page.Title, page.TitleLength))
		sb.WriteString(fmt.Sprintf("    Meta description: %d chars\n", page.MetaDescriptionLength))
		sb.WriteString(fmt.Sprintf("    H1 headings:      %d\n", page.H1Count))
		sb.WriteString(fmt.Sprintf("    Internal links:   %d\n", page.InternalLinks))
		if page.CanonicalPresent {
			sb.WriteString(fmt.Sprintf("    Canonical:        %s\n", page.CanonicalURL))
		}
	}

	if len(page.Issues) == 0 {
		sb.WriteString("    No issues\n")
	} else {
		names := make([]string, len(page.Issues))
		for i, code := range page.Issues {
			names[i] = HumanizeIssue(code)
		}
		sb.WriteString(fmt.Sprintf("    Issues: %s\n", strings.Join(names, ", ")))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by SEOScan\n")
	sb.WriteString("https://github.com/seoscan/seoscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/seoscan/seoscan/internal/model"
)

// MarkdownWriter outputs audit results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the audit result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AuditResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writePages(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.AuditResult) {
	md.H1("SEOScan Audit Report")
	md.PlainText("")

	completed := "-"
	if !result.CompletedAt.IsZero() {
		completed = result.CompletedAt.Format("2006-01-02 15:04:05 MST")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root URL", "`" + result.URL + "`"},
			{"Completed", completed},
			{"Pages Crawled", strconv.Itoa(result.PagesCrawled)},
			{"Total Issues", strconv.Itoa(model.TotalIssues(result.Pages))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the aggregate issue counters.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.AuditResult) {
	md.H2("Issue Summary")
	md.PlainText("")

	s := result.Summary
	md.Table(markdown.TableSet{
		Header: []string{"Issue", "Pages Affected"},
		Rows: [][]string{
			{"Missing title", strconv.Itoa(s.MissingTitle)},
			{"Missing meta description", strconv.Itoa(s.MissingMetaDescription)},
			{"Multiple H1 headings", strconv.Itoa(s.MultipleH1)},
			{"Noindex directive", strconv.Itoa(s.NoindexPages)},
			{"Non-200 status", strconv.Itoa(s.Non200Pages)},
		},
	})
	md.PlainText("")

	if model.TotalIssues(result.Pages) > 0 {
		w.writePieChart(md, result)
	}

	w.writeAlert(md, result)
}

// writePieChart writes a mermaid pie chart for issue distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.AuditResult) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, page := range result.Pages {
		for _, code := range page.Issues {
			if counts[code] == 0 {
				order = append(order, code)
			}
			counts[code]++
		}
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Distribution"),
		piechart.WithShowData(true),
	)
	for _, code := range order {
		chart.LabelAndIntValue(HumanizeIssue(code), uint64(counts[code]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the audit outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AuditResult) {
	s := result.Summary
	switch {
	case s.NoindexPages > 0:
		md.Cautionf(
			"%d page(s) carry a noindex directive and are excluded from search indexes.",
			s.NoindexPages,
		)
	case s.MissingTitle > 0 || s.Non200Pages > 0:
		md.Warningf(
			"%d page(s) have no title and %d page(s) answered with a non-200 status.",
			s.MissingTitle, s.Non200Pages,
		)
	case model.TotalIssues(result.Pages) > 0:
		md.Note("Only minor SEO issues detected.")
	default:
		md.Tip("No SEO issues detected.")
	}
	md.PlainText("")
}

// writePages writes the per-page findings table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, result *model.AuditResult) {
	md.H2("Pages")
	md.PlainText("")

	if len(result.Pages) == 0 {
		md.PlainText("No pages crawled.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(result.Pages))
	for i, page := range result.Pages {
		status := strconv.Itoa(page.StatusCode)
		if page.StatusCode == 0 {
			status = "failed"
		}

		issues := "-"
		if len(page.Issues) > 0 {
			names := make([]string, len(page.Issues))
			for j, code := range page.Issues {
				names[j] = HumanizeIssue(code)
			}
			issues = strings.Join(names, ", ")
		}

		rows[i] = []string{
			truncateString(page.URL, 50),
			status,
			strconv.Itoa(page.TitleLength),
			strconv.Itoa(page.H1Count),
			fmt.Sprintf("%.2f", page.PageSizeKB),
			truncateString(issues, 70),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Title Length", "H1s", "Size (KB)", "Issues"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [SEOScan](https://github.com/seoscan/seoscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

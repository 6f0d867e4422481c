package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seoscan/seoscan/internal/analyzer"
	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/crawler"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/urlutil"
)

// CrawlStep fetches the root page, extracts its navigation links, and
// fetches each navigation target.
//
// Design decision: Crawling is a separate step because:
// 1. It is the only step that performs network I/O
// 2. Its configuration (concurrency, timeouts) is independent of analysis
// 3. Analysis can be re-run over fetched pages without refetching
type CrawlStep struct {
	// fetcher performs the HTTP fetches. One fetcher is shared by all
	// concurrent page fetches of the crawl.
	fetcher *crawler.Fetcher

	// concurrency bounds the number of simultaneous page fetches.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithCrawlConcurrency sets the maximum number of simultaneous fetches.
func WithCrawlConcurrency(n int) CrawlStepOption {
	return func(s *CrawlStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithCrawlLogger sets a custom logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		s.logger = logger
	}
}

// NewCrawlStep creates a new crawling step using the given fetcher.
func NewCrawlStep(fetcher *crawler.Fetcher, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		fetcher:     fetcher,
		concurrency: config.DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl step.
//
// An unparseable root URL is a fatal error and fails the audit. A root
// fetch failure is not: the audit completes with a single failed page,
// because "the site is down" is itself a finding worth reporting. Failed
// navigation fetches likewise become failed pages rather than errors.
func (s *CrawlStep) Do(ctx context.Context, result *model.AuditResult) error {
	base, err := url.Parse(result.URL)
	if err != nil {
		return fmt.Errorf("invalid root URL %q: %w", result.URL, err)
	}

	rootPage, err := s.fetcher.Fetch(ctx, result.URL)
	if err != nil {
		s.logger.Warn("root fetch failed",
			"url", result.URL,
			"error", err,
		)
		result.RawPages = []*model.Page{model.NewFailedPage(result.URL, err)}
		return nil
	}

	links := s.navigationLinks(rootPage, base)

	s.logger.Info("navigation extracted",
		"url", result.URL,
		"links", len(links),
	)

	// Index 0 is the root; navigation targets keep extraction order
	// regardless of fetch completion order.
	pages := make([]*model.Page, len(links)+1)
	pages[0] = rootPage

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, link := range links {
		g.Go(func() error {
			page, err := s.fetcher.Fetch(gctx, link)
			if err != nil {
				s.logger.Debug("page fetch failed",
					"url", link,
					"error", err,
				)
				page = model.NewFailedPage(link, err)
			}
			pages[i+1] = page
			return nil
		})
	}

	// Goroutines never return errors; per-page failures are recorded as
	// failed pages. Only cancellation can abort the crawl.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	result.RawPages = pages
	return nil
}

// navigationLinks extracts the root page's navigation targets, dropping
// any link that resolves back to the root itself so the root is never
// fetched twice.
func (s *CrawlStep) navigationLinks(rootPage *model.Page, base *url.URL) []string {
	doc, err := crawler.ParseDocument(bytes.NewReader(rootPage.Body))
	if err != nil {
		s.logger.Warn("root page parse failed", "url", rootPage.URL, "error", err)
		return nil
	}

	root, _ := urlutil.Normalize(rootPage.URL, base)

	var links []string
	for _, link := range crawler.NewNavigationExtractor(base).Extract(doc) {
		if link == root {
			continue
		}
		links = append(links, link)
	}
	return links
}

// AnalyzeStep evaluates every fetched page against the SEO rule set.
type AnalyzeStep struct {
	// analyzer runs the rule checks.
	analyzer *analyzer.Analyzer

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.analyzer = analyzer.New(analyzer.WithLogger(s.logger))

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step. Page order follows the crawl's
// discovery order: the root page first, then navigation targets.
func (s *AnalyzeStep) Do(ctx context.Context, result *model.AuditResult) error {
	base, err := url.Parse(result.URL)
	if err != nil {
		return fmt.Errorf("invalid root URL %q: %w", result.URL, err)
	}

	for _, page := range result.RawPages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		result.Pages = append(result.Pages, s.analyzer.AnalyzePage(page, base))
	}

	s.logger.Info("analysis completed",
		"url", result.URL,
		"pages", len(result.Pages),
		"total_issues", model.TotalIssues(result.Pages),
	)

	return nil
}

// SummarizeStep computes the aggregate counters from the per-page results
// and stamps the completion time.
type SummarizeStep struct{}

// NewSummarizeStep creates a new summarize step.
func NewSummarizeStep() *SummarizeStep {
	return &SummarizeStep{}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarize step. The summary is a pure reduction over
// the page issues, so re-running it is idempotent.
func (s *SummarizeStep) Do(_ context.Context, result *model.AuditResult) error {
	result.PagesCrawled = len(result.Pages)
	result.Summary = model.Summarize(result.Pages)
	result.CompletedAt = time.Now().UTC()
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Concurrency bounds simultaneous page fetches within one audit.
	Concurrency int

	// Timeout is the per-request timeout for page fetches.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// RateLimit caps fetches per second; zero disables pacing.
	RateLimit float64

	// HTTPClient overrides the fetcher's HTTP client when set.
	// Used by tests to point audits at local servers.
	HTTPClient *http.Client
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineConcurrency sets the fetch concurrency for the pipeline.
func WithPipelineConcurrency(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Concurrency = n
	}
}

// WithPipelineTimeout sets the per-request fetch timeout.
func WithPipelineTimeout(d time.Duration) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Timeout = d
	}
}

// WithPipelineUserAgent sets the User-Agent header for HTTP requests.
func WithPipelineUserAgent(userAgent string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.UserAgent = userAgent
	}
}

// WithPipelineMaxBodySize sets the maximum response body size in bytes.
func WithPipelineMaxBodySize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxBodySize = size
	}
}

// WithPipelineRateLimit caps page fetches per second.
func WithPipelineRateLimit(rps float64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.RateLimit = rps
	}
}

// WithPipelineHTTPClient sets a custom HTTP client for page fetches.
func WithPipelineHTTPClient(client *http.Client) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.HTTPClient = client
	}
}

// DefaultPipeline creates a pipeline with the standard audit steps.
//
// Design decision: We provide a default pipeline because:
// 1. The step order (crawl, analyze, summarize) is fixed for audits
// 2. It reduces boilerplate in the CLI and the HTTP server
// 3. It keeps fetcher construction in one place
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineConcurrency, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Concurrency: config.DefaultConcurrency,
		Timeout:     config.DefaultTimeout,
		UserAgent:   config.DefaultUserAgent,
		MaxBodySize: config.DefaultMaxBodySize,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	// The client option comes first so the timeout applies to whichever
	// client ends up in use.
	var fetcherOpts []crawler.FetcherOption
	if cfg.HTTPClient != nil {
		fetcherOpts = append(fetcherOpts, crawler.WithHTTPClient(cfg.HTTPClient))
	}
	fetcherOpts = append(fetcherOpts,
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	if cfg.RateLimit > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithRateLimit(cfg.RateLimit))
	}

	p.AddSteps(
		NewCrawlStep(
			crawler.NewFetcher(fetcherOpts...),
			WithCrawlConcurrency(cfg.Concurrency),
			WithCrawlLogger(p.logger),
		),
		NewAnalyzeStep(
			WithAnalyzeLogger(p.logger),
		),
		NewSummarizeStep(),
	)

	return p
}

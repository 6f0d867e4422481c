package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/pipeline"
)

// PipelineFactory creates a fresh pipeline for each audit.
// A factory keeps pipeline state from leaking between concurrent audits.
type PipelineFactory func() *pipeline.Pipeline

// Orchestrator starts audits and tracks them through their lifecycle:
// pending when accepted, running while the pipeline executes, and finally
// completed or failed.
//
// Design decision: Start returns as soon as the record is stored and the
// audit runs on its own goroutine. Clients poll Get for progress; the
// store only ever holds state, never execution handles, so reading an
// audit can never block on a running crawl.
type Orchestrator struct {
	// store holds the audit records.
	store Store

	// factory creates the pipeline for each audit.
	factory PipelineFactory

	// logger for structured logging.
	logger *slog.Logger

	// wg tracks running audits for graceful shutdown.
	wg sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator backed by the given store and pipeline
// factory.
func New(store Store, factory PipelineFactory, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:   store,
		factory: factory,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// Start validates the root URL, records a pending audit, and launches its
// execution. It returns the new audit record immediately; the caller polls
// Get with the returned ID for progress.
//
// The context only covers the synchronous store insert. Execution uses an
// independent context so an audit keeps running after the triggering HTTP
// request completes.
func (o *Orchestrator) Start(ctx context.Context, rawURL string) (*model.Audit, error) {
	if err := validateRootURL(rawURL); err != nil {
		return nil, err
	}

	a := model.NewAudit(uuid.NewString(), rawURL)
	if err := o.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("store audit: %w", err)
	}

	o.logger.Info("audit accepted",
		"audit_id", a.ID,
		"url", a.URL,
	)

	o.wg.Add(1)
	go o.run(context.WithoutCancel(ctx), a.Clone())

	return a, nil
}

// Get returns a snapshot of the audit with the given ID.
func (o *Orchestrator) Get(ctx context.Context, id string) (*model.Audit, error) {
	return o.store.Get(ctx, id)
}

// Wait blocks until all running audits finish.
// Used for graceful shutdown and tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// run executes one audit and records its terminal state.
func (o *Orchestrator) run(ctx context.Context, a *model.Audit) {
	defer o.wg.Done()

	// A panicking pipeline must not take the whole process down, and the
	// audit must still reach a terminal state.
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("audit panicked",
				"audit_id", a.ID,
				"url", a.URL,
				"panic", r,
			)
			a.Status = model.StatusFailed
			a.Error = fmt.Sprintf("internal error: %v", r)
			o.update(ctx, a)
		}
	}()

	a.Status = model.StatusRunning
	o.update(ctx, a)

	result := model.NewAuditResult(a.URL)
	if err := o.factory().Execute(ctx, result); err != nil {
		o.logger.Warn("audit failed",
			"audit_id", a.ID,
			"url", a.URL,
			"error", err,
		)
		a.Status = model.StatusFailed
		a.Error = err.Error()
		o.update(ctx, a)
		return
	}

	a.Status = model.StatusCompleted
	a.Results = result
	o.update(ctx, a)

	o.logger.Info("audit completed",
		"audit_id", a.ID,
		"url", a.URL,
		"pages_crawled", result.PagesCrawled,
	)
}

// update writes the audit back to the store, logging failures.
// A failed state write is not recoverable from inside the audit.
func (o *Orchestrator) update(ctx context.Context, a *model.Audit) {
	if err := o.store.Update(ctx, a); err != nil {
		o.logger.Error("failed to update audit",
			"audit_id", a.ID,
			"status", a.Status,
			"error", err,
		)
	}
}

// validateRootURL checks that the URL is absolute with an http or https
// scheme and a host.
func validateRootURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

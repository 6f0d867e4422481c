package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/seoscan/seoscan/internal/model"
)

// recordStep records invocations for pipeline ordering tests.
type recordStep struct {
	name  string
	calls *[]string
	err   error
}

func (s *recordStep) Name() string { return s.name }

func (s *recordStep) Do(_ context.Context, _ *model.AuditResult) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

// TestPipelineExecute tests step ordering and failure behavior.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddSteps(
			&recordStep{name: "first", calls: &calls},
			&recordStep{name: "second", calls: &calls},
			&recordStep{name: "third", calls: &calls},
		)

		if err := p.Execute(context.Background(), model.NewAuditResult("https://example.com")); err != nil {
			t.Fatalf("execute: %v", err)
		}
		if len(calls) != 3 || calls[0] != "first" || calls[2] != "third" {
			t.Errorf("call order: %v", calls)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddSteps(
			&recordStep{name: "first", calls: &calls, err: boom},
			&recordStep{name: "second", calls: &calls},
		)

		if err := p.Execute(context.Background(), model.NewAuditResult("https://example.com")); !errors.Is(err, boom) {
			t.Fatalf("got %v, want boom", err)
		}
		if len(calls) != 1 {
			t.Errorf("second step must not run: %v", calls)
		}
	})

	t.Run("respects cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls []string
		p := New(WithLogger(discardLogger()))
		p.AddStep(&recordStep{name: "never", calls: &calls})

		if err := p.Execute(ctx, model.NewAuditResult("https://example.com")); !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
		if len(calls) != 0 {
			t.Errorf("no step should run: %v", calls)
		}
	})

	t.Run("step introspection", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline([]Option{WithLogger(discardLogger())})
		if p.StepCount() != 3 {
			t.Errorf("step count: got %d, want 3", p.StepCount())
		}
		want := []string{"crawl", "analyze", "summarize"}
		for i, name := range p.StepNames() {
			if name != want[i] {
				t.Errorf("step %d: got %q, want %q", i, name, want[i])
			}
		}
	})
}

// TestDefaultPipelineEndToEnd audits a local site through the full
// crawl, analyze, and summarize sequence.
func TestDefaultPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	server := newTestSite(t)

	p := DefaultPipeline(
		[]Option{WithLogger(discardLogger())},
		WithPipelineConcurrency(2),
	)

	result := model.NewAuditResult(server.URL)
	if err := p.Execute(context.Background(), result); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.PagesCrawled != 4 {
		t.Fatalf("pages crawled: got %d, want 4", result.PagesCrawled)
	}
	if result.Pages[0].URL != server.URL {
		t.Errorf("root must come first: got %q", result.Pages[0].URL)
	}
	if result.Summary.MultipleH1 != 1 {
		t.Errorf("multiple h1: got %d", result.Summary.MultipleH1)
	}
	if result.Summary.NoindexPages != 1 {
		t.Errorf("noindex pages: got %d", result.Summary.NoindexPages)
	}
	if result.Summary.Non200Pages != 1 {
		t.Errorf("non-200 pages: got %d", result.Summary.Non200Pages)
	}
	if result.CompletedAt.IsZero() {
		t.Error("completed at must be set")
	}
}

// TestBatchProcessor tests concurrent multi-site auditing.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	factory := func() *Pipeline {
		return DefaultPipeline([]Option{WithLogger(discardLogger())})
	}

	t.Run("audits all urls and keeps input order", func(t *testing.T) {
		t.Parallel()

		siteA := newTestSite(t)
		siteB := newTestSite(t)

		bp := NewBatchProcessor(factory,
			WithBatchConcurrency(2),
			WithBatchLogger(discardLogger()),
		)

		results, err := bp.ProcessBatch(context.Background(), []string{siteA.URL, siteB.URL})
		if err != nil {
			t.Fatalf("batch: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("results: got %d", len(results))
		}
		if results[0].URL != siteA.URL || results[1].URL != siteB.URL {
			t.Errorf("order not preserved: %v, %v", results[0].URL, results[1].URL)
		}
		for i, r := range results {
			if r.Err != nil || r.Result == nil {
				t.Errorf("result %d: err=%v result=%v", i, r.Err, r.Result)
			}
		}
	})

	t.Run("one failure does not abort the batch", func(t *testing.T) {
		t.Parallel()

		site := newTestSite(t)

		bp := NewBatchProcessor(factory, WithBatchLogger(discardLogger()))
		results, err := bp.ProcessBatch(context.Background(), []string{"://bad", site.URL})
		if err != nil {
			t.Fatalf("batch: %v", err)
		}

		if results[0].Err == nil {
			t.Error("invalid URL must fail its slot")
		}
		if results[1].Err != nil || results[1].Result == nil {
			t.Errorf("valid site must still complete: %+v", results[1])
		}
	})
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/pipeline"
)

// newTargetSite starts a small site with a navigation menu for audits
// to crawl.
func newTargetSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<title>Home page with a reasonably descriptive title</title>
			<meta name="description" content="A meta description that is comfortably long enough to satisfy the length rule applied during page analysis here.">
		</head><body>
			<nav><ul>
				<li><a href="/about">About</a></li>
			</ul></nav>
			<h1>Welcome</h1>
		</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>About</title></head><body><h1>About</h1></body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestAPI builds the API handler on a real orchestrator and serves it
// from a test server. The returned orchestrator lets tests wait for
// audits to finish.
func newTestAPI(t *testing.T) (*httptest.Server, *audit.Orchestrator) {
	t.Helper()

	factory := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(nil, pipeline.WithPipelineTimeout(5*time.Second))
	}
	orch := audit.New(audit.NewMemoryStore(), factory)

	handler, err := New(Config{Orchestrator: orch})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, orch
}

// doJSON performs a request with a JSON body and returns the response
// and its body bytes.
func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

// TestHealth tests the liveness endpoint.
func TestHealth(t *testing.T) {
	t.Parallel()

	api, _ := newTestAPI(t)

	res, data := doJSON(t, http.MethodGet, api.URL+"/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", res.StatusCode, string(data))
	}

	var health HealthResponse
	if err := json.Unmarshal(data, &health); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status: got %q, want %q", health.Status, "ok")
	}
}

// TestAuditLifecycle tests the start-then-poll flow end to end against a
// real crawl.
func TestAuditLifecycle(t *testing.T) {
	t.Parallel()

	target := newTargetSite(t)
	api, orch := newTestAPI(t)

	res, data := doJSON(t, http.MethodPost, api.URL+"/audit", StartAuditRequest{URL: target.URL})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("start status %d: %s", res.StatusCode, string(data))
	}

	var started StartAuditResponse
	if err := json.Unmarshal(data, &started); err != nil {
		t.Fatalf("unmarshal start response: %v", err)
	}
	if started.AuditID == "" {
		t.Fatal("audit_id must not be empty")
	}
	if started.Status != "started" {
		t.Errorf("status: got %q, want %q", started.Status, "started")
	}

	orch.Wait()

	res, data = doJSON(t, http.MethodGet, api.URL+"/audit/"+started.AuditID, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status %d: %s", res.StatusCode, string(data))
	}

	var a model.Audit
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("unmarshal audit: %v", err)
	}
	if a.ID != started.AuditID {
		t.Errorf("audit_id: got %q, want %q", a.ID, started.AuditID)
	}
	if a.Status != model.StatusCompleted {
		t.Fatalf("status: got %q, want %q (error: %q)", a.Status, model.StatusCompleted, a.Error)
	}
	if a.Results == nil {
		t.Fatal("completed audit must carry results")
	}
	if a.Results.PagesCrawled != 2 {
		t.Errorf("pages crawled: got %d, want 2", a.Results.PagesCrawled)
	}
}

// TestStartAuditRejectsInvalidURL tests the 400 mapping for unusable
// root URLs.
func TestStartAuditRejectsInvalidURL(t *testing.T) {
	t.Parallel()

	api, _ := newTestAPI(t)

	tests := []struct {
		name string
		body any
	}{
		{"relative url", StartAuditRequest{URL: "/relative/path"}},
		{"missing scheme", StartAuditRequest{URL: "example.com"}},
		{"unsupported scheme", StartAuditRequest{URL: "ftp://example.com"}},
		{"empty url", StartAuditRequest{URL: ""}},
		{"missing url field", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, data := doJSON(t, http.MethodPost, api.URL+"/audit", tt.body)
			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d: %s", res.StatusCode, http.StatusBadRequest, string(data))
			}
		})
	}
}

// TestConcurrentConstruction tests that building several handlers at
// once is safe and the validation error mapping still holds afterwards.
func TestConcurrentConstruction(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			orch := audit.New(audit.NewMemoryStore(), func() *pipeline.Pipeline {
				return pipeline.DefaultPipeline(nil)
			})
			if _, err := New(Config{Orchestrator: orch}); err != nil {
				t.Errorf("build handler: %v", err)
			}
		}()
	}
	wg.Wait()

	api, _ := newTestAPI(t)
	res, data := doJSON(t, http.MethodPost, api.URL+"/audit", map[string]any{})
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d: %s", res.StatusCode, http.StatusBadRequest, string(data))
	}
}

// TestGetAuditNotFound tests the 404 mapping for unknown audit IDs.
func TestGetAuditNotFound(t *testing.T) {
	t.Parallel()

	api, _ := newTestAPI(t)

	res, data := doJSON(t, http.MethodGet, api.URL+"/audit/no-such-audit", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want %d: %s", res.StatusCode, http.StatusNotFound, string(data))
	}
}

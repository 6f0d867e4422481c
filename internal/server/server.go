package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/model"
)

// Config for the HTTP API handler.
type Config struct {
	// Orchestrator runs and tracks audits. Required.
	Orchestrator *audit.Orchestrator

	// Logger for request logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// New returns an HTTP handler exposing the SEOScan API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Orchestrator == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	overrideHumaErrors()

	router := chi.NewRouter()
	router.Use(requestLogger(logger))

	hcfg := huma.DefaultConfig("SEOScan API", "1.0.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)

	registerHealth(api)
	registerAudits(api, cfg.Orchestrator)

	return router, nil
}

var humaErrorOverride sync.Once

// overrideHumaErrors installs the error mapping exactly once.
// huma.NewErrorWithContext is package-global state, so assigning it on
// every New would race when two handlers are built concurrently.
//
// Schema/request validation errors should be 400, not huma's default
// 422, so a body without a url field and a body with an unusable url
// answer with the same status.
func overrideHumaErrors() {
	humaErrorOverride.Do(func() {
		huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
				status = http.StatusBadRequest
			}
			return huma.NewError(status, msg, errs...)
		}
	})
}

// requestLogger logs each request at debug level once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}

// handleError maps engine errors to API status codes.
func handleError(err error) error {
	switch {
	case errors.Is(err, audit.ErrInvalidURL):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, audit.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body HealthResponse `json:"body"`
	}, error) {
		return &struct {
			Body HealthResponse `json:"body"`
		}{Body: HealthResponse{Status: "ok"}}, nil
	})
}

func registerAudits(api huma.API, orch *audit.Orchestrator) {
	huma.Register(api, huma.Operation{
		OperationID: "start-audit",
		Method:      http.MethodPost,
		Path:        "/audit",
		Summary:     "Start an audit",
		Description: "Accepts a root URL, stores a pending audit, and launches it asynchronously.",
		Errors: []int{
			http.StatusBadRequest,
			http.StatusInternalServerError,
		},
	}, func(ctx context.Context, input *struct {
		Body StartAuditRequest `json:"body"`
	}) (*struct {
		Body StartAuditResponse `json:"body"`
	}, error) {
		a, err := orch.Start(ctx, input.Body.URL)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body StartAuditResponse `json:"body"`
		}{Body: StartAuditResponse{
			AuditID: a.ID,
			Status:  "started",
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-audit",
		Method:      http.MethodGet,
		Path:        "/audit/{audit_id}",
		Summary:     "Get an audit",
		Description: "Returns the audit record, including results once the status is completed.",
		Errors: []int{
			http.StatusNotFound,
			http.StatusInternalServerError,
		},
	}, func(ctx context.Context, input *struct {
		AuditID string `path:"audit_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	}) (*struct {
		Body *model.Audit `json:"body"`
	}, error) {
		a, err := orch.Get(ctx, input.AuditID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body *model.Audit `json:"body"`
		}{Body: a}, nil
	})
}

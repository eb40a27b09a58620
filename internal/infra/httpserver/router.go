package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appreports "github.com/bryanwahyu/portfolio-report/internal/application/reports"
	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	domain "github.com/bryanwahyu/portfolio-report/internal/domain/report"
	"github.com/bryanwahyu/portfolio-report/internal/middleware"
)

type Router struct {
	reports *appreports.Service
	budget  time.Duration
}

// NewRouter wires the report endpoints. budget bounds one generation
// request end to end.
func NewRouter(reports *appreports.Service, budget time.Duration, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{reports: reports, budget: budget}
	mux := chi.NewRouter()

	if len(checkers) > 0 {
		mux.Get("/health", middleware.HealthHandler(checkers))
	} else {
		mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/report/generate", r.wrap(r.handleGenerate))
		rt.Get("/reports/latest", r.wrap(r.handleLatest))
		rt.Get("/reports/{id}", r.wrap(r.handleGet))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			http.Error(w, err.Error(), statusFor(err))
		}
	}
}

// statusFor maps pipeline failures onto HTTP statuses. Timeout checks come
// first so budget exhaustion is not reported as an upstream fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRequestTimeout), errors.Is(err, domai.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUnsupportedProvider), errors.Is(err, domain.ErrMalformedProfile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoUsableData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProfileUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domai.ErrRejected), errors.Is(err, domai.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrRenderingFailed):
		return http.StatusInternalServerError
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// POST /v1/report/generate
// Body: {"model": "gemini|openai|deepseek", "ProfileURL": "<url>"}
// Runs the full pipeline synchronously and returns the artifact location.
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	var cmd appreports.GenerateCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		return errors.Join(domain.ErrMalformedProfile, err)
	}
	if err := middleware.ValidateProfileURL(cmd.ProfileURL); err != nil {
		return errors.Join(domain.ErrMalformedProfile, err)
	}

	middleware.IncrementReports()
	middleware.IncrementReportsRunning()
	defer middleware.DecrementReportsRunning()

	ctx := req.Context()
	if r.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.budget)
		defer cancel()
	}

	result, err := r.reports.Generate(ctx, cmd)
	if err != nil {
		middleware.IncrementReportsFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/reports/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.reports.Latest(req.Context(), limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	rep, err := r.reports.Get(req.Context(), domain.ID(id))
	if err != nil {
		return err
	}
	if rep == nil {
		return sql.ErrNoRows
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rep)
}

// Package chi serves nearest-neighbor queries over a merged well collection.
package chi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/domain"
	"github.com/kailas-cloud/wellfinder/internal/domain/query"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
	logpkg "github.com/kailas-cloud/wellfinder/internal/logger"
	"github.com/kailas-cloud/wellfinder/internal/metrics"
	"github.com/kailas-cloud/wellfinder/internal/usecase/health"
)

// Paging limits for GET /v1/wells.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wellsPage struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Wells  []well.Record `json:"wells"`
}

type healthResponse struct {
	Status string                        `json:"status"`
	Wells  int                           `json:"wells"`
	Checks map[string]health.CheckResult `json:"checks"`
}

// Selector answers nearest-neighbor queries.
type Selector interface {
	Query(q query.Nearest, wells []well.Record) well.QueryResult
	Report(q query.Nearest, wells []well.Record) well.Report
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// Server answers queries against one immutable well collection. The slice
// is shared by all request goroutines and must not be modified after NewServer.
type Server struct {
	wells    []well.Record
	selector Selector
	apiKeys  []string
	health   HealthChecker
	logger   *zap.Logger
}

// NewServer creates an HTTP query server. Health defaults to a single check
// that the collection is not empty.
func NewServer(wells []well.Record, selector Selector, logger *zap.Logger) *Server {
	s := &Server{wells: wells, selector: selector, logger: logger}
	s.health = health.New(map[string]health.Checker{
		"wells": health.WellsLoaded(func() int { return len(s.wells) }),
	})
	return s
}

// WithHealth replaces the health checker.
func (s *Server) WithHealth(h HealthChecker) *Server {
	s.health = h
	return s
}

// WithAPIKeys enables bearer authentication on the query routes.
func (s *Server) WithAPIKeys(keys []string) *Server {
	s.apiKeys = keys
	return s
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(s.apiKeys))

	r.Get("/health", s.healthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1/wells", func(r chi.Router) {
		r.Get("/", s.listWells)
		r.Get("/nearest", s.nearest)
		r.Get("/report", s.report)
	})
	return r
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	rep := s.health.Check(r.Context())
	status := http.StatusOK
	if rep.Status == health.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(rep.Status), Wells: len(s.wells), Checks: rep.Checks})
}

func (s *Server) listWells(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", DefaultPageSize)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "offset must be a non-negative integer")
		return
	}
	limit = min(limit, MaxPageSize)

	start := min(offset, len(s.wells))
	end := min(start+limit, len(s.wells))
	writeJSON(w, http.StatusOK, wellsPage{
		Total:  len(s.wells),
		Offset: offset,
		Limit:  limit,
		Wells:  s.wells[start:end:end],
	})
}

func (s *Server) nearest(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parseQuery(w, r)
	if !ok {
		return
	}
	start := time.Now()
	res := s.selector.Query(q, s.wells)
	observeQuery(start)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parseQuery(w, r)
	if !ok {
		return
	}
	start := time.Now()
	rep := s.selector.Report(q, s.wells)
	observeQuery(start)
	writeJSON(w, http.StatusOK, rep)
}

// parseQuery reads lat, lon (required), n and name (optional) from the URL.
func (s *Server) parseQuery(w http.ResponseWriter, r *http.Request) (query.Nearest, bool) {
	lat, err := floatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return query.Nearest{}, false
	}
	lon, err := floatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return query.Nearest{}, false
	}
	n, err := intParam(r, "n", query.DefaultCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "n must be an integer")
		return query.Nearest{}, false
	}

	q, err := query.New(lat, lon, r.URL.Query().Get("name"), n)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return query.Nearest{}, false
		}
		logpkg.FromContext(r.Context()).Error("Build query", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return query.Nearest{}, false
	}
	return q, true
}

func observeQuery(start time.Time) {
	metrics.QueryDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	metrics.QueriesTotal.WithLabelValues("http").Inc()
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a decimal number")
	}
	return v, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

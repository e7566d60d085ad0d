package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partdex/internal/domain"
	"github.com/kailas-cloud/partdex/internal/domain/search/facet"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
	"github.com/kailas-cloud/partdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/partdex/internal/logger"
	healthuc "github.com/kailas-cloud/partdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/partdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits configures result caps of the search endpoint.
type Limits struct {
	Default int
	Max     int
}

// Server serves the partdex HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.Max <= 0 || limits.Max > searchuc.MaxLimit {
		limits.Max = searchuc.MaxLimit
	}
	if limits.Default <= 0 {
		limits.Default = searchuc.DefaultLimit
	}
	limits.Default = min(limits.Default, limits.Max)
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		search: search,
		health: health,
		limits: limits,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCatalogEmpty, http.StatusServiceUnavailable),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable),
		sentinelHandler(domain.ErrInvalidSource, http.StatusServiceUnavailable),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout),
	}
	return s
}

// SearchParts handles GET /api/v1/search.
func (s *Server) SearchParts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := query.FromValues(params)

	items, err := s.search.Search(r.Context(), q, s.limit(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []result.Item{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Items: items})
}

// ListFacets handles GET /api/v1/facets.
func (s *Server) ListFacets(w http.ResponseWriter, r *http.Request) {
	q := query.FromValues(r.URL.Query())

	f, err := s.search.Facets(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, facetsToResponse(f))
}

// ReloadCatalog handles POST /api/v1/catalog/reload.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := s.search.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	logpkg.FromContextOr(r.Context(), s.logger).Info("catalog reloaded",
		zap.String("source", snap.Source),
		zap.Int("records", snap.Len()),
		zap.Int("skipped", snap.Skipped),
	)
	writeJSON(w, http.StatusOK, ReloadResponse{
		Records:  snap.Len(),
		Skipped:  snap.Skipped,
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt.UTC(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// limit reads the limit parameter. Missing or unparseable means the default;
// anything else is clamped to [1, max].
func (s *Server) limit(r *http.Request) int {
	var limit *int
	err := runtime.BindQueryParameter("form", true, false, query.ParamLimit, r.URL.Query(), &limit)
	if err != nil || limit == nil {
		return s.limits.Default
	}
	return searchuc.ClampLimit(*limit, s.limits.Max)
}

func facetsToResponse(f facet.Facets) FacetsResponse {
	out := make(map[string]FacetValues, len(f))
	for name, buckets := range f {
		if buckets == nil {
			buckets = []facet.Bucket{}
		}
		out[name] = FacetValues{Values: buckets}
	}
	return FacetsResponse{Facets: out}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCatalogEmpty,
		domain.ErrCatalogUnavailable,
		domain.ErrInvalidSource,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "catalog load timed out"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

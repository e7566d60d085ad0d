package chi

import (
	"time"

	"github.com/kailas-cloud/partdex/internal/domain/search/facet"
	"github.com/kailas-cloud/partdex/internal/domain/search/result"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SearchResponse is returned by GET /api/v1/search.
type SearchResponse struct {
	Items []result.Item `json:"items"`
}

// FacetValues wraps the buckets of one facet.
type FacetValues struct {
	Values []facet.Bucket `json:"values"`
}

// FacetsResponse is returned by GET /api/v1/facets.
type FacetsResponse struct {
	Facets map[string]FacetValues `json:"facets"`
}

// ReloadResponse is returned by POST /api/v1/catalog/reload.
type ReloadResponse struct {
	Records  int       `json:"records"`
	Skipped  int       `json:"skipped"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/domain/search/facet"
	"github.com/kailas-cloud/partdex/internal/domain/search/filter"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
	"github.com/kailas-cloud/partdex/internal/domain/search/result"
	"github.com/kailas-cloud/partdex/internal/metrics"
)

// Result caps.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Service answers search and facet queries over the current catalog snapshot.
type Service struct {
	catalog   Catalog
	facetTopN int
}

// New creates a search service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog, facetTopN: facet.MaxValues}
}

// WithFacetTopN lowers the per-facet value cap. Values outside (0, facet.MaxValues] are ignored.
func (s *Service) WithFacetTopN(n int) *Service {
	if n > 0 && n <= facet.MaxValues {
		s.facetTopN = n
	}
	return s
}

// Search returns up to limit matching records in catalog order.
func (s *Service) Search(ctx context.Context, q query.Query, limit int) ([]result.Item, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	matched := filter.Apply(snap.Records, q)
	if limit > len(matched) {
		limit = len(matched)
	}
	if limit < 0 {
		limit = 0
	}

	items := make([]result.Item, 0, limit)
	for i := range matched[:limit] {
		it := result.New(&matched[i])
		metrics.ConnectionDerivationsTotal.WithLabelValues(string(it.ConnectionSource())).Inc()
		items = append(items, it)
	}
	return items, nil
}

// Facets aggregates every facet over the records matching q.
func (s *Service) Facets(ctx context.Context, q query.Query) (facet.Facets, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	out := facet.Compute(filter.Apply(snap.Records, q), q)
	if s.facetTopN < facet.MaxValues {
		for name, buckets := range out {
			if len(buckets) > s.facetTopN {
				out[name] = buckets[:s.facetTopN]
			}
		}
	}
	return out, nil
}

// Reload swaps in a fresh catalog snapshot. The previous one stays on failure.
func (s *Service) Reload(ctx context.Context) (*part.Catalog, error) {
	snap, err := s.catalog.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload catalog: %w", err)
	}
	return snap, nil
}

// ClampLimit bounds a requested limit to [1, maxLimit]. maxLimit outside
// (0, MaxLimit] means MaxLimit.
func ClampLimit(limit, maxLimit int) int {
	if maxLimit <= 0 || maxLimit > MaxLimit {
		maxLimit = MaxLimit
	}
	return max(1, min(limit, maxLimit))
}

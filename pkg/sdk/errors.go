package partdex

import "github.com/kailas-cloud/partdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
	ErrCatalogEmpty       = domain.ErrCatalogEmpty
	ErrInvalidSource      = domain.ErrInvalidSource
)

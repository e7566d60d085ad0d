package health

import (
	"context"

	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// CatalogReader loads the catalog snapshot.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*part.Catalog, error)
}

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

package search

import (
	"context"

	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// Catalog provides the record snapshot queries run against.
type Catalog interface {
	Snapshot(ctx context.Context) (*part.Catalog, error)
	Reload(ctx context.Context) (*part.Catalog, error)
}

package partdex

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/kailas-cloud/partdex/internal/domain/normalize"
	"github.com/kailas-cloud/partdex/internal/domain/search/facet"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
	"github.com/kailas-cloud/partdex/internal/domain/search/result"
)

// Universal selects parts that fit every platform.
const Universal = query.Universal

// Source yields the raw NDJSON catalog document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// Item is one search hit.
type Item = result.Item

// Bucket is one facet value with its record count.
type Bucket = facet.Bucket

// Facets maps a facet field name to its buckets.
type Facets = facet.Facets

// Query filters the catalog. Empty strings and nil measures impose no constraint.
type Query struct {
	Text            string
	Platform        string // canonical code, alias or Universal
	Group           string
	ProductGroup    string
	Abformung       string
	Color           string
	Rotationsschutz string
	Variant         string

	DiameterMM    *float64
	LengthMM      *float64
	GingivaMM     *float64
	AngulationDeg *float64
	ConnectionMM  *float64
}

// Float returns a pointer to v, for Query measures.
func Float(v float64) *float64 { return &v }

func (q Query) toDomain() query.Query {
	out := query.Empty()
	out.Text = strings.TrimSpace(q.Text)
	out.Platform = strings.TrimSpace(q.Platform)
	out.Group = strings.TrimSpace(q.Group)
	out.ProductGroup = strings.TrimSpace(q.ProductGroup)
	out.Abformung = strings.TrimSpace(q.Abformung)
	out.Color = strings.TrimSpace(q.Color)
	out.Rotation = normalize.ClassifyRotationProtection(q.Rotationsschutz)
	out.Variant = strings.TrimSpace(q.Variant)

	setMeasure(&out.Diameter, q.DiameterMM)
	setMeasure(&out.Length, q.LengthMM)
	setMeasure(&out.Gingiva, q.GingivaMM)
	setMeasure(&out.Angulation, q.AngulationDeg)
	setMeasure(&out.Connection, q.ConnectionMM)
	return out
}

func setMeasure(dst *float64, v *float64) {
	if v != nil && normalize.IsFinite(*v) {
		*dst = *v
	}
}

// CatalogInfo describes a loaded catalog snapshot.
type CatalogInfo struct {
	Records  int
	Skipped  int
	Source   string
	LoadedAt time.Time
}

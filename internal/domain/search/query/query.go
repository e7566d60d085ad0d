// Package query models the parameter set shared by the search and facet endpoints.
package query

import (
	"math"
	"net/url"
	"strings"

	"github.com/kailas-cloud/partdex/internal/domain/normalize"
)

// Universal is the platform sentinel selecting parts without a platform.
const Universal = "universal"

// Parameter names.
const (
	ParamQ               = "q"
	ParamPlatform        = "platform"
	ParamGroup           = "group"
	ParamProductGroup    = "product_group"
	ParamDiameter        = "diameter_mm"
	ParamLength          = "length_mm"
	ParamGingiva         = "gingiva_mm"
	ParamAngulation      = "angulation_deg"
	ParamConnection      = "connection_mm"
	ParamConnectionAlias = "connection_size_mm"
	ParamAbformung       = "abformung"
	ParamColor           = "color"
	ParamRotation        = "rotationsschutz"
	ParamVariant         = "variant"
	ParamLimit           = "limit"
)

// Query is a parsed, immutable filter request. Absent parameters are zero
// strings or NaN measures and impose no constraint.
type Query struct {
	Text         string
	Platform     string
	Group        string
	ProductGroup string
	Abformung    string
	Color        string
	Rotation     normalize.RotationClass
	Variant      string

	Diameter   float64
	Length     float64
	Gingiva    float64
	Angulation float64
	Connection float64
}

// Empty returns a query with no constraints.
func Empty() Query {
	nan := math.NaN()
	return Query{Diameter: nan, Length: nan, Gingiva: nan, Angulation: nan, Connection: nan}
}

// FromValues parses query-string parameters. Unparseable numbers count as absent.
func FromValues(v url.Values) Query {
	q := Empty()
	q.Text = get(v, ParamQ)
	q.Platform = get(v, ParamPlatform)
	q.Group = get(v, ParamGroup)
	q.ProductGroup = get(v, ParamProductGroup)
	q.Abformung = get(v, ParamAbformung)
	q.Color = get(v, ParamColor)
	q.Rotation = normalize.ClassifyRotationProtection(get(v, ParamRotation))
	q.Variant = get(v, ParamVariant)

	q.Diameter = number(v, ParamDiameter)
	q.Length = number(v, ParamLength)
	q.Gingiva = number(v, ParamGingiva)
	q.Angulation = number(v, ParamAngulation)
	q.Connection = number(v, ParamConnection)
	if !normalize.IsFinite(q.Connection) {
		q.Connection = number(v, ParamConnectionAlias)
	}
	return q
}

// WantsUniversal reports whether the platform filter selects universal parts.
func (q Query) WantsUniversal() bool {
	return strings.EqualFold(q.Platform, Universal)
}

// HasGingiva reports whether a gingiva measure was supplied.
func (q Query) HasGingiva() bool { return normalize.IsFinite(q.Gingiva) }

func get(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func number(v url.Values, key string) float64 {
	s := get(v, key)
	if s == "" {
		return math.NaN()
	}
	return normalize.ToNumber(s)
}

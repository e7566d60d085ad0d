// Package filter selects the catalog records matching a query.
package filter

import (
	"math"
	"strings"

	"github.com/kailas-cloud/partdex/internal/domain/connection"
	"github.com/kailas-cloud/partdex/internal/domain/normalize"
	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
)

// Predicate reports whether a record satisfies one query constraint.
type Predicate func(rec *part.Record) bool

// Apply returns the records matching every constraint of q, in input order.
// The input slice is never modified.
func Apply(records []part.Record, q query.Query) []part.Record {
	preds := Predicates(q)
	if len(preds) == 0 {
		return records
	}

	out := make([]part.Record, 0, len(records))
	for i := range records {
		if matchAll(&records[i], preds) {
			out = append(out, records[i])
		}
	}
	return out
}

// Predicates builds one predicate per supplied parameter of q.
func Predicates(q query.Query) []Predicate {
	var preds []Predicate

	if q.Text != "" {
		preds = append(preds, containsFold(q.Text, (*part.Record).SearchText))
	}
	if q.Platform != "" {
		preds = append(preds, platform(q))
	}
	if q.Group != "" {
		preds = append(preds, equalFold(q.Group, func(r *part.Record) part.Value { return r.Group }))
	}
	if q.ProductGroup != "" {
		preds = append(preds, equalFold(q.ProductGroup, func(r *part.Record) part.Value { return r.ProductGroup }))
	}
	if q.Abformung != "" {
		preds = append(preds, equalFold(q.Abformung, func(r *part.Record) part.Value { return r.Abformung }))
	}
	if q.Color != "" {
		preds = append(preds, equalFold(q.Color, func(r *part.Record) part.Value { return r.Color }))
	}

	measures := []struct {
		want float64
		get  func(r *part.Record) float64
	}{
		{q.Diameter, func(r *part.Record) float64 { return r.DiameterMM.Number() }},
		{q.Length, func(r *part.Record) float64 { return r.LengthMM.Number() }},
		{q.Gingiva, func(r *part.Record) float64 { return r.GingivaMM.Number() }},
		{q.Angulation, func(r *part.Record) float64 { return r.AngulationDeg.Number() }},
		{q.Connection, ConnectionOf},
	}
	for _, m := range measures {
		if normalize.IsFinite(m.want) {
			preds = append(preds, approx(m.want, m.get))
		}
	}

	if q.Rotation != normalize.RotationUnknown {
		want := q.Rotation
		preds = append(preds, func(r *part.Record) bool {
			// unclassified records carry no opinion and stay in
			got := normalize.ClassifyRotationProtection(r.Rotationsschutz.String())
			return got == normalize.RotationUnknown || got == want
		})
	}
	if q.Variant != "" {
		preds = append(preds, containsFold(q.Variant, (*part.Record).VariantText))
	}
	return preds
}

// ConnectionOf derives the connection size of r, using its own gingiva
// height as the disambiguation hint. NaN when unknown.
func ConnectionOf(r *part.Record) float64 {
	v, ok := connection.Derive(r, r.GingivaMM.Number())
	if !ok {
		return math.NaN()
	}
	return v
}

func matchAll(rec *part.Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

func platform(q query.Query) Predicate {
	if q.WantsUniversal() {
		return (*part.Record).IsUniversal
	}
	want, _ := normalize.Platform(q.Platform)
	return func(r *part.Record) bool {
		got, ok := r.CanonicalPlatform()
		return ok && strings.EqualFold(got, want)
	}
}

func equalFold(want string, get func(r *part.Record) part.Value) Predicate {
	want = normalize.Fold(want)
	return func(r *part.Record) bool {
		return normalize.Fold(get(r).String()) == want
	}
}

func containsFold(needle string, haystack func(r *part.Record) string) Predicate {
	needle = strings.ToLower(needle)
	return func(r *part.Record) bool {
		return strings.Contains(strings.ToLower(haystack(r)), needle)
	}
}

func approx(want float64, get func(r *part.Record) float64) Predicate {
	return func(r *part.Record) bool {
		return normalize.ApproxEqual(get(r), want)
	}
}

// Package facet builds value-count histograms over a filtered record set.
package facet

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/kailas-cloud/partdex/internal/domain/connection"
	"github.com/kailas-cloud/partdex/internal/domain/normalize"
	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/domain/search/filter"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
)

// MaxValues caps every facet list.
const MaxValues = 50

// Facet field names.
const (
	FieldPlatform      = "platform"
	FieldPlatformScope = "platform_scope"
	FieldGroup         = "group"
	FieldProductGroup  = "product_group"
	FieldAbformung     = "abformung"
	FieldAusfuehrung   = "ausfuehrung"
	FieldRotation      = "rotationsschutz"
	FieldColor         = "color"
	FieldDiameter      = "diameter_mm"
	FieldLength        = "length_mm"
	FieldGingiva       = "gingiva_mm"
	FieldAngulation    = "angulation_deg"
	FieldConnection    = "connection_mm"
)

// Bucket is one value with its record count. Value is a string for
// enumerations and a float64 for measures.
type Bucket struct {
	Value any `json:"value"`
	Count int `json:"count"`
}

// Facets maps a field name to its buckets, sorted by descending count.
type Facets map[string][]Bucket

// Compute aggregates every facet over records, which must already be
// filtered by q. q only contributes the gingiva hint of the connection facet.
func Compute(records []part.Record, q query.Query) Facets {
	out := Facets{
		FieldPlatform: enumeration(records, func(r *part.Record) string {
			p, _ := r.CanonicalPlatform()
			return p
		}),
		FieldPlatformScope: enumeration(records, (*part.Record).Scope),
		FieldGroup:         enumeration(records, text(func(r *part.Record) part.Value { return r.Group })),
		FieldProductGroup:  enumeration(records, text(func(r *part.Record) part.Value { return r.ProductGroup })),
		FieldAbformung:     enumeration(records, text(func(r *part.Record) part.Value { return r.Abformung })),
		FieldAusfuehrung:   enumeration(records, text(func(r *part.Record) part.Value { return r.Ausfuehrung })),
		FieldRotation:      enumeration(records, text(func(r *part.Record) part.Value { return r.Rotationsschutz })),
		FieldColor:         enumeration(records, text(func(r *part.Record) part.Value { return r.Color })),
		FieldDiameter:      measure(records, number(func(r *part.Record) part.Value { return r.DiameterMM })),
		FieldLength:        measure(records, number(func(r *part.Record) part.Value { return r.LengthMM })),
		FieldGingiva:       measure(records, number(func(r *part.Record) part.Value { return r.GingivaMM })),
		FieldAngulation:    measure(records, number(func(r *part.Record) part.Value { return r.AngulationDeg })),
	}
	out[FieldConnection] = connectionFacet(records, q.Gingiva, out[FieldDiameter])
	return out
}

func text(get func(r *part.Record) part.Value) func(r *part.Record) string {
	return func(r *part.Record) string { return get(r).String() }
}

func number(get func(r *part.Record) part.Value) func(r *part.Record) float64 {
	return func(r *part.Record) float64 { return get(r).Number() }
}

func enumeration(records []part.Record, key func(r *part.Record) string) []Bucket {
	counts := make(map[string]int)
	for i := range records {
		if k := key(&records[i]); k != "" {
			counts[k]++
		}
	}
	buckets := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, Bucket{Value: k, Count: n})
	}
	return rank(buckets)
}

func measure(records []part.Record, get func(r *part.Record) float64) []Bucket {
	return rank(histogram(records, get, 1))
}

func histogram(records []part.Record, get func(r *part.Record) float64, places int) []Bucket {
	counts := make(map[float64]int)
	for i := range records {
		v := get(&records[i])
		if !normalize.IsFinite(v) {
			continue
		}
		counts[normalize.RoundTo(v, places)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for v, n := range counts {
		buckets = append(buckets, Bucket{Value: v, Count: n})
	}
	return buckets
}

// connectionFacet buckets the derived connection size and removes values that
// are probably some other measurement: the gingiva hint, a surfaced diameter,
// implausible sizes and, when there is a choice, singletons.
func connectionFacet(records []part.Record, gingiva float64, diameters []Bucket) []Bucket {
	// two places keep the 3.75 nominal size apart from 3.8
	raw := histogram(records, filter.ConnectionOf, 2)

	kept := make([]Bucket, 0, len(raw))
	for _, b := range raw {
		v := b.Value.(float64)
		if normalize.ApproxEqual(v, gingiva) {
			continue
		}
		if surfaced(v, diameters) {
			continue
		}
		if !connection.Plausible(v) {
			continue
		}
		kept = append(kept, b)
	}

	if len(kept) > 1 {
		multi := kept[:0]
		for _, b := range kept {
			if b.Count > 1 {
				multi = append(multi, b)
			}
		}
		kept = multi
	}
	return rank(kept)
}

func surfaced(v float64, buckets []Bucket) bool {
	for _, b := range buckets {
		if d, ok := b.Value.(float64); ok && normalize.ApproxEqual(v, d) {
			return true
		}
	}
	return false
}

// rank sorts by descending count, then ascending value, and applies MaxValues.
func rank(buckets []Bucket) []Bucket {
	slices.SortFunc(buckets, func(a, b Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return compareValues(a.Value, b.Value)
	})
	if len(buckets) > MaxValues {
		buckets = buckets[:MaxValues]
	}
	return buckets
}

func compareValues(a, b any) int {
	fa, aok := a.(float64)
	fb, bok := b.(float64)
	if aok && bok {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(valueString(a), valueString(b))
}

func valueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Package part models one prosthetic part record of the catalog.
package part

import (
	"strings"

	"github.com/kailas-cloud/partdex/internal/domain/normalize"
)

// Platform scope buckets.
const (
	ScopePlatform  = "platform"
	ScopeUniversal = "universal"
)

// Record is a catalog entry. Records are read-only once loaded.
type Record struct {
	SKU            Value `json:"sku"`
	MfgCode        Value `json:"mfg_code"`
	NameDE         Value `json:"name_de"`
	NameLongDE     Value `json:"name_long_de"`
	NameVendor     Value `json:"name_vendor"`
	NameLongVendor Value `json:"name_long_vendor"`

	Group        Value `json:"group"`
	ProductGroup Value `json:"product_group"`
	Platform     Value `json:"platform"`

	DiameterMM    Value `json:"diameter_mm"`
	LengthMM      Value `json:"length_mm"`
	GingivaMM     Value `json:"gingiva_mm"`
	AngulationDeg Value `json:"angulation_deg"`

	ConnectionMM Value `json:"connection_mm"`

	Abformung       Value `json:"abformung"`
	Color           Value `json:"color"`
	Ausfuehrung     Value `json:"ausfuehrung"`
	Rotationsschutz Value `json:"rotationsschutz"`
	Zubehoer        Value `json:"zubehoer"`
}

// Names returns the non-empty name fields, short before long, German before vendor.
func (r *Record) Names() []string {
	fields := []Value{r.NameDE, r.NameLongDE, r.NameVendor, r.NameLongVendor}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.IsEmpty() {
			out = append(out, f.String())
		}
	}
	return out
}

// CanonicalPlatform returns the canonical platform code; ok is false for universal parts.
func (r *Record) CanonicalPlatform() (string, bool) {
	if r.Platform.IsEmpty() {
		return "", false
	}
	return normalize.Platform(r.Platform.String())
}

// IsUniversal reports whether the part carries no platform restriction.
func (r *Record) IsUniversal() bool {
	_, ok := r.CanonicalPlatform()
	return !ok
}

// Scope returns ScopeUniversal or ScopePlatform.
func (r *Record) Scope() string {
	if r.IsUniversal() {
		return ScopeUniversal
	}
	return ScopePlatform
}

// SearchText is the haystack of the free-text q predicate.
func (r *Record) SearchText() string {
	return joinNonEmpty(r.SKU, r.MfgCode, r.NameDE, r.NameLongDE)
}

// VariantText is the haystack of the variant predicate.
func (r *Record) VariantText() string {
	return joinNonEmpty(r.Ausfuehrung, r.Rotationsschutz, r.Zubehoer)
}

func joinNonEmpty(vals ...Value) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		if !v.IsEmpty() {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, " ")
}

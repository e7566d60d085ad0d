// Package result shapes catalog records into the public search item.
package result

import (
	"github.com/kailas-cloud/partdex/internal/domain/connection"
	"github.com/kailas-cloud/partdex/internal/domain/normalize"
	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// Item is the fixed public field set of a search hit.
type Item struct {
	SKU           string   `json:"sku"`
	MfgCode       string   `json:"mfg_code,omitempty"`
	NameDE        string   `json:"name_de,omitempty"`
	NameLongDE    string   `json:"name_long_de,omitempty"`
	Group         string   `json:"group,omitempty"`
	ProductGroup  string   `json:"product_group,omitempty"`
	Platform      *string  `json:"platform"`
	PlatformScope string   `json:"platform_scope"`
	DiameterMM    *float64 `json:"diameter_mm"`
	LengthMM      *float64 `json:"length_mm"`
	GingivaMM     *float64 `json:"gingiva_mm"`
	AngulationDeg *float64 `json:"angulation_deg"`
	ConnectionMM  *float64 `json:"connection_mm"`

	Abformung       string `json:"abformung,omitempty"`
	Color           string `json:"color,omitempty"`
	Ausfuehrung     string `json:"ausfuehrung,omitempty"`
	Rotationsschutz string `json:"rotationsschutz,omitempty"`
	Zubehoer        string `json:"zubehoer,omitempty"`

	connectionSource connection.Source
}

// New shapes rec. The connection size is derived with the record's own
// gingiva height as hint, the same way the filter engine does.
func New(rec *part.Record) Item {
	conn, src := connection.DeriveWithSource(rec, rec.GingivaMM.Number())

	it := Item{
		SKU:             rec.SKU.String(),
		MfgCode:         rec.MfgCode.String(),
		NameDE:          rec.NameDE.String(),
		NameLongDE:      rec.NameLongDE.String(),
		Group:           rec.Group.String(),
		ProductGroup:    rec.ProductGroup.String(),
		PlatformScope:   rec.Scope(),
		DiameterMM:      measure(rec.DiameterMM.Number()),
		LengthMM:        measure(rec.LengthMM.Number()),
		GingivaMM:       measure(rec.GingivaMM.Number()),
		AngulationDeg:   measure(rec.AngulationDeg.Number()),
		ConnectionMM:    measure(conn),
		Abformung:       rec.Abformung.String(),
		Color:           rec.Color.String(),
		Ausfuehrung:     rec.Ausfuehrung.String(),
		Rotationsschutz: rec.Rotationsschutz.String(),
		Zubehoer:        rec.Zubehoer.String(),

		connectionSource: src,
	}
	if p, ok := rec.CanonicalPlatform(); ok {
		it.Platform = &p
	}
	return it
}

// ConnectionSource reports which derivation stage produced ConnectionMM.
func (it *Item) ConnectionSource() connection.Source { return it.connectionSource }

func measure(v float64) *float64 {
	if !normalize.IsFinite(v) {
		return nil
	}
	return &v
}

package filter

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
)

func catalog() []part.Record {
	return []part.Record{
		{
			SKU: part.Text("A-1"), NameDE: part.Text("Abutment gerade"), Platform: part.Text("P06"),
			Group: part.Text("Abutments"), DiameterMM: part.Num(5.0), GingivaMM: part.Num(2.0),
			Rotationsschutz: part.Text("mit"), Ausfuehrung: part.Text("gerade"),
		},
		{
			SKU: part.Text("A-2"), NameDE: part.Text("Abutment abgewinkelt"), Platform: part.Text("p6"),
			Group: part.Text("abutments"), AngulationDeg: part.Num(15), GingivaMM: part.Text("2,05"),
			Rotationsschutz: part.Text("ohne"),
		},
		{
			SKU: part.Text("S-1"), NameDE: part.Text("Laborschraube"), Group: part.Text("Schrauben"),
			NameVendor: part.Text("Lab screw abutment"),
		},
		{
			SKU: part.Text("C-1"), NameDE: part.Text("Abutment Certain (Ext Hex, 3,4 mm)"), Platform: part.Text("P03"),
			DiameterMM: part.Num(4.1), Color: part.Text("gold"),
		},
		{
			SKU: part.Text("C-2"), MfgCode: part.Text("IUA-999"), NameDE: part.Text("Gingivaformer"),
			Platform: part.Text("P03"), ConnectionMM: part.Text("3,4"),
		},
	}
}

func skus(records []part.Record) []string {
	out := make([]string, 0, len(records))
	for i := range records {
		out = append(out, records[i].SKU.String())
	}
	return out
}

func q(kv ...string) query.Query {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Add(kv[i], kv[i+1])
	}
	return query.FromValues(v)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query query.Query
		want  []string
	}{
		{"no constraints", query.Empty(), []string{"A-1", "A-2", "S-1", "C-1", "C-2"}},
		{"text is case-insensitive", q("q", "ABUTMENT"), []string{"A-1", "A-2", "C-1"}},
		{"text searches mfg code", q("q", "iua-999"), []string{"C-2"}},
		{"platform canonicalized", q("platform", "6"), []string{"A-1", "A-2"}},
		{"universal", q("platform", "universal"), []string{"S-1"}},
		{"group equality folded", q("group", "ABUTMENTS"), []string{"A-1", "A-2"}},
		{"diameter tolerance", q("diameter_mm", "5,05"), []string{"A-1"}},
		{"gingiva tolerance", q("gingiva_mm", "2"), []string{"A-1", "A-2"}},
		{"angulation", q("angulation_deg", "15"), []string{"A-2"}},
		{"color", q("color", "Gold"), []string{"C-1"}},
		{"rotation with keeps unclassified", q("rotationsschutz", "ja"), []string{"A-1", "S-1", "C-1", "C-2"}},
		{"rotation without keeps unclassified", q("rotationsschutz", "nein"), []string{"A-2", "S-1", "C-1", "C-2"}},
		{"unrecognized rotation is ignored", q("rotationsschutz", "egal"), []string{"A-1", "A-2", "S-1", "C-1", "C-2"}},
		{"variant substring", q("variant", "GERA"), []string{"A-1"}},
		{"connection derived and explicit", q("connection_mm", "3.4"), []string{"C-1", "C-2"}},
		{"connection alias", q("connection_size_mm", "4,1"), []string{"A-1", "A-2"}},
		{"conjunction", q("platform", "P06", "angulation_deg", "15"), []string{"A-2"}},
		{"no match", q("platform", "P99"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skus(Apply(catalog(), tt.query)))
		})
	}
}

func TestApply_ConjunctionCommutes(t *testing.T) {
	records := catalog()
	params := [][2]string{
		{"platform", "P06"},
		{"group", "abutments"},
		{"gingiva_mm", "2"},
		{"connection_mm", "4.1"},
		{"q", "abutment"},
	}
	for _, a := range params {
		for _, b := range params {
			both := Apply(records, q(a[0], a[1], b[0], b[1]))
			chained := Apply(Apply(records, q(a[0], a[1])), q(b[0], b[1]))
			assert.Equal(t, skus(both), skus(chained), "%v then %v", a, b)
		}
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	records := catalog()
	before := skus(records)

	_ = Apply(records, q("platform", "P03"))

	assert.Equal(t, before, skus(records))
}

func TestPredicates_Count(t *testing.T) {
	assert.Empty(t, Predicates(query.Empty()))
	assert.Len(t, Predicates(q("platform", "P06", "diameter_mm", "5", "variant", "x")), 3)
	// unparseable measures impose nothing
	assert.Empty(t, Predicates(q("diameter_mm", "n/a")))
}

func TestConnectionOf(t *testing.T) {
	records := catalog()
	assert.InDelta(t, 4.1, ConnectionOf(&records[0]), 1e-9)
	assert.InDelta(t, 3.4, ConnectionOf(&records[3]), 1e-9)
	assert.True(t, math.IsNaN(ConnectionOf(&records[2])))
}

func TestApply_RotationExcludesOnlyOppositeClass(t *testing.T) {
	records := []part.Record{
		{SKU: part.Text("R-1"), Rotationsschutz: part.Text("mit")},
		{SKU: part.Text("R-2"), Rotationsschutz: part.Text("Sechskant")},
		{SKU: part.Text("R-3")},
		{SKU: part.Text("R-4"), Rotationsschutz: part.Text("ohne")},
	}

	assert.Equal(t, []string{"R-1", "R-2", "R-3"}, skus(Apply(records, q("rotationsschutz", "mit"))))
	assert.Equal(t, []string{"R-2", "R-3", "R-4"}, skus(Apply(records, q("rotationsschutz", "ohne"))))
}

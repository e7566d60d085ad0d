// Package connection derives a part's implant-connection diameter.
//
// The derivation layers increasingly specific signals: an explicit
// connection_mm field, a fixed platform table, then millimeter mentions in the
// product names. Every stage obeys the same range and exclusion rules. Text candidates pass through independent stages
// (extract -> exclude -> range -> snap -> whitelist) and the first survivor in
// document order wins. An unknown result is always preferred over a guess.
package connection

import (
	"math"
	"regexp"
	"strings"

	"github.com/kailas-cloud/partdex/internal/domain/normalize"
	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// Plausible physical range of implant connectors, in mm.
const (
	MinMM = 3.0
	MaxMM = 6.5
)

// Source names the stage that produced a derived value.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourcePlatform Source = "platform"
	SourceText     Source = "text"
	SourceUnknown  Source = "unknown"
)

// platformDefaults fixes the connection size of platforms known to have a single one.
// Provisional: extend only with verified platform codes.
var platformDefaults = map[string]float64{
	"P06": 4.1,
	"P08": 5.0,
}

// knownSizes are real connector sizes on the market.
var knownSizes = []float64{3.3, 3.4, 3.5, 3.75, 4.1, 4.5, 4.8, 5.0, 5.5, 5.7}

// nominal375 is stored with rounding noise often enough to deserve its own snap.
const (
	nominal375   = 3.75
	snapDistance = 0.06
)

var interfaceKeywords = []string{
	"ext hex", "certain", "internal", "external", "eztetic", "tsx", "platform", "hex", "connection",
}

var (
	parenRe = regexp.MustCompile(`\(([^()]*)\)`)
	mmRe    = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*mm`)
)

// Derive returns the best-effort connection diameter of rec. hint is an extra
// measurement known not to be the connection (typically gingiva height); pass
// NaN when there is none.
func Derive(rec *part.Record, hint float64) (float64, bool) {
	v, src := DeriveWithSource(rec, hint)
	return v, src != SourceUnknown
}

// DeriveWithSource is Derive reporting which stage decided.
// Explicit and platform values that fail the range or exclusion check fall
// through to the next stage.
func DeriveWithSource(rec *part.Record, hint float64) (float64, Source) {
	diameter := rec.DiameterMM.Number()

	if !rec.ConnectionMM.IsEmpty() {
		if v := rec.ConnectionMM.Number(); Admissible(v, diameter, hint) {
			return v, SourceExplicit
		}
	}

	if p, ok := rec.CanonicalPlatform(); ok {
		if v, ok := PlatformDefault(p); ok && Admissible(v, diameter, hint) {
			return v, SourcePlatform
		}
	}

	text := SearchText(rec)
	cands := Candidates(Pool(text))
	if len(cands) == 0 {
		cands = Candidates([]string{text})
	}
	cands = InRange(Exclude(cands, diameter, hint))
	for _, c := range cands {
		if s := Snap(c); IsKnownSize(s) {
			return s, SourceText
		}
	}
	return math.NaN(), SourceUnknown
}

// PlatformDefault looks up the fixed connection size of a canonical platform code.
func PlatformDefault(canonical string) (float64, bool) {
	v, ok := platformDefaults[canonical]
	return v, ok
}

// SearchText joins all name fields of rec into one string.
func SearchText(rec *part.Record) string {
	return strings.Join(rec.Names(), " | ")
}

// Segments returns the contents of every parenthesized group in text.
func Segments(text string) []string {
	matches := parenRe.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// HasInterfaceKeyword reports whether s names the implant interface.
func HasInterfaceKeyword(s string) bool {
	l := strings.ToLower(s)
	for _, kw := range interfaceKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// Pool selects the text fragments to search for candidates: keyword-bearing
// parentheses, else all parentheses, else the whole text.
func Pool(text string) []string {
	segs := Segments(text)
	if len(segs) == 0 {
		return []string{text}
	}
	var keyed []string
	for _, s := range segs {
		if HasInterfaceKeyword(s) {
			keyed = append(keyed, s)
		}
	}
	if len(keyed) > 0 {
		return keyed
	}
	return segs
}

// Candidates extracts every "<number> mm" mention, in order.
func Candidates(pool []string) []float64 {
	var out []float64
	for _, s := range pool {
		for _, m := range mmRe.FindAllStringSubmatch(s, -1) {
			if f := normalize.ToNumber(m[1]); normalize.IsFinite(f) {
				out = append(out, f)
			}
		}
	}
	return out
}

// Exclude drops candidates tolerance-equal to the part's own diameter or to
// the hint. NaN arguments exclude nothing.
func Exclude(cands []float64, diameter, hint float64) []float64 {
	out := make([]float64, 0, len(cands))
	for _, c := range cands {
		if normalize.ApproxEqual(c, diameter) || normalize.ApproxEqual(c, hint) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// InRange keeps candidates inside [MinMM, MaxMM].
func InRange(cands []float64) []float64 {
	out := make([]float64, 0, len(cands))
	for _, c := range cands {
		if Plausible(c) {
			out = append(out, c)
		}
	}
	return out
}

// Admissible reports whether v may be returned for a part with the given
// diameter and hint: plausible and tolerance-distinct from both.
func Admissible(v, diameter, hint float64) bool {
	return Plausible(v) && !normalize.ApproxEqual(v, diameter) && !normalize.ApproxEqual(v, hint)
}

// Plausible reports whether v is a physically plausible connector size.
func Plausible(v float64) bool {
	return normalize.IsFinite(v) && v >= MinMM && v <= MaxMM
}

// Snap maps c to 3.75 when it is within 0.06 of it, otherwise rounds to 0.1.
func Snap(c float64) float64 {
	if math.Abs(c-nominal375) < snapDistance {
		return nominal375
	}
	return normalize.RoundTo(c, 1)
}

// IsKnownSize reports whether v is one of the whitelisted connector sizes.
func IsKnownSize(v float64) bool {
	for _, k := range knownSizes {
		if normalize.Within(v, k, 1e-9) {
			return true
		}
	}
	return false
}

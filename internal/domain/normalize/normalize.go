// Package normalize canonicalizes catalog strings and numbers and defines the
// tolerance-equality relation shared by filtering, faceting and derivation.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Epsilon is the tolerance under which two measurements count as the same (mm or deg).
const Epsilon = 0.11

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ToNumber parses a measurement written with a decimal comma or embedded units.
// "4,1 mm" -> 4.1. Returns NaN when nothing finite remains.
func ToNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// Number is ToNumber for untyped input (JSON-decoded values, query strings).
func Number(v any) float64 {
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		return ToNumber(x)
	default:
		return ToNumber(fmt.Sprint(x))
	}
}

// IsFinite reports whether f is a usable measurement.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ApproxEqual reports |a-b| < Epsilon. False when either side is not finite.
func ApproxEqual(a, b float64) bool {
	return Within(a, b, Epsilon)
}

// Within reports |a-b| < eps for finite a and b.
func Within(a, b, eps float64) bool {
	if !IsFinite(a) || !IsFinite(b) {
		return false
	}
	return math.Abs(a-b) < eps
}

// RoundTo rounds f to the given number of decimal places.
func RoundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

func finite(f float64) float64 {
	if !IsFinite(f) {
		return math.NaN()
	}
	return f
}

var platformCode = regexp.MustCompile(`^P?(\d{1,2})$`)

// Platform canonicalizes a platform code: "6", "p6", " P 06 " -> "P06".
// Other non-empty strings pass through uppercased with whitespace removed.
// ok is false for an empty platform, which callers treat as universal.
func Platform(p string) (canonical string, ok bool) {
	s := strings.ToUpper(strings.Join(strings.Fields(p), ""))
	if s == "" {
		return "", false
	}
	if m := platformCode.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("P%02d", n), true
	}
	return s, true
}

// RotationClass is the coarse reading of rotation-protection free text.
type RotationClass string

const (
	// RotationUnknown means the text gives no opinion.
	RotationUnknown RotationClass = ""
	// RotationWith means the part has rotation protection (engaging).
	RotationWith RotationClass = "with"
	// RotationWithout means the part has none (non-engaging).
	RotationWithout RotationClass = "without"
)

var (
	rotationWithRe    = regexp.MustCompile(`(?i)\b(with|mit|ja|yes|rotation|r-schutz)\b`)
	rotationWithoutRe = regexp.MustCompile(`(?i)\b(without|ohne|nein|no)\b`)
)

// ClassifyRotationProtection maps bilingual free text to with/without.
// "with" keywords win when both appear.
func ClassifyRotationProtection(text string) RotationClass {
	switch {
	case rotationWithRe.MatchString(text):
		return RotationWith
	case rotationWithoutRe.MatchString(text):
		return RotationWithout
	default:
		return RotationUnknown
	}
}

// Fold lowercases and trims s for case-insensitive comparisons.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

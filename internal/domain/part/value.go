package part

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/partdex/internal/domain/normalize"
)

// Value is a scalar catalog attribute as found in the source: a string, a
// number, a boolean or null. It keeps the raw textual form and whether the
// attribute was present at all.
type Value struct {
	raw     string
	present bool
}

// Text creates a present Value from s.
func Text(s string) Value { return Value{raw: s, present: true} }

// Num creates a present Value from a number.
func Num(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64), present: true}
}

// Null is an absent Value.
func Null() Value { return Value{} }

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string value: %w", err)
		}
		*v = Text(s)
	case '{', '[':
		// nested structures carry no scalar attribute
		*v = Value{}
	default:
		// numbers and booleans keep their literal form
		*v = Text(string(data))
	}
	return nil
}

// MarshalJSON writes the raw form as a JSON string, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// Present reports whether the attribute appeared in the source (even empty).
func (v Value) Present() bool { return v.present }

// IsEmpty reports whether the attribute is absent or blank.
func (v Value) IsEmpty() bool { return !v.present || strings.TrimSpace(v.raw) == "" }

// String returns the trimmed raw value, "" when absent.
func (v Value) String() string { return strings.TrimSpace(v.raw) }

// Number returns the normalized numeric value, NaN when absent or unparseable.
func (v Value) Number() float64 {
	if v.IsEmpty() {
		return math.NaN()
	}
	return normalize.ToNumber(v.raw)
}

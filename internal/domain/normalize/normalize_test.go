package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"4,1", 4.1},
		{"4.1", 4.1},
		{"4,1 mm", 4.1},
		{"Ø 5,0", 5.0},
		{"  3.75mm ", 3.75},
		{"15°", 15},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToNumber(tt.in), 1e-9)
		})
	}
}

func TestToNumber_NaN(t *testing.T) {
	for _, in := range []string{"", "mm", "abc", "..", "1.2.3"} {
		assert.True(t, math.IsNaN(ToNumber(in)), "ToNumber(%q)", in)
	}
}

func TestNumber(t *testing.T) {
	assert.True(t, math.IsNaN(Number(nil)))
	assert.InDelta(t, 4.5, Number(4.5), 1e-9)
	assert.InDelta(t, 3.0, Number(3), 1e-9)
	assert.InDelta(t, 4.1, Number("4,1"), 1e-9)
	assert.True(t, math.IsNaN(Number(math.Inf(1))))
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(4.1, 4.1))
	assert.True(t, ApproxEqual(4.1, 4.2))
	assert.False(t, ApproxEqual(4.0, 4.2))
	assert.False(t, ApproxEqual(math.NaN(), 4.1))
	assert.False(t, ApproxEqual(4.1, math.NaN()))
	assert.False(t, ApproxEqual(math.NaN(), math.NaN()))
}

func TestApproxEqual_Symmetric(t *testing.T) {
	vals := []float64{3.0, 3.05, 3.1, 3.75, 3.8, 4.1, 4.2, math.NaN()}
	for _, a := range vals {
		for _, b := range vals {
			assert.Equal(t, ApproxEqual(a, b), ApproxEqual(b, a), "a=%v b=%v", a, b)
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 3.8, RoundTo(3.75, 1), 1e-9)
	assert.InDelta(t, 3.75, RoundTo(3.751, 2), 1e-9)
	assert.InDelta(t, 4.0, RoundTo(4.04, 1), 1e-9)
}

func TestPlatform(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"P06", "P06", true},
		{"p6", "P06", true},
		{"6", "P06", true},
		{" P 08 ", "P08", true},
		{"12", "P12", true},
		{"ncs", "NCS", true},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Platform(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatform_Idempotent(t *testing.T) {
	for _, in := range []string{"p6", "P06", "8", "NCS"} {
		once, _ := Platform(in)
		twice, _ := Platform(once)
		assert.Equal(t, once, twice)
	}
}

func TestClassifyRotationProtection(t *testing.T) {
	tests := []struct {
		in   string
		want RotationClass
	}{
		{"mit Rotationsschutz", RotationWith},
		{"Ja", RotationWith},
		{"with", RotationWith},
		{"R-Schutz", RotationWith},
		{"ohne", RotationWithout},
		{"Nein", RotationWithout},
		{"without", RotationWithout},
		{"no", RotationWithout},
		{"", RotationUnknown},
		{"Titan", RotationUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRotationProtection(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "abutment", Fold("  Abutment "))
}

package impact

import (
	"math"
	"testing"
)

func TestNormalizeBounds(t *testing.T) {
	ceilings := []float64{0.5, 1, 10, 37.5}
	for _, c := range ceilings {
		for v := 0.0; v <= 3*c; v += c / 16 {
			got := Normalize(v, c)
			if got < 0 || got > 1 {
				t.Errorf("Normalize(%v, %v) = %v, out of [0,1]", v, c, got)
			}
		}
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	const ceiling = 10.0
	prev := Normalize(0, ceiling)
	for v := 0.05; v < 20; v += 0.05 {
		got := Normalize(v, ceiling)
		if got < prev {
			t.Fatalf("Normalize decreased at v=%v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestNormalizeSaturates(t *testing.T) {
	tests := []struct {
		name       string
		v, ceiling float64
		want       float64
	}{
		{"zero", 0, 10, 0},
		{"half", 5, 10, 0.5},
		{"at ceiling", 10, 10, 1},
		{"above ceiling", 55, 10, 1},
		{"negative speed", -3, 10, 0},
		{"degenerate ceiling", 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.v, tt.ceiling)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Normalize(%v, %v) = %v, want %v", tt.v, tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestNormalizeUsesGivenCeiling(t *testing.T) {
	// Same speed against a reconfigured ceiling
	if a, b := Normalize(5, 10), Normalize(5, 5); a == b {
		t.Errorf("Expected different intensities for different ceilings, got %v and %v", a, b)
	}
}

func TestAudible(t *testing.T) {
	if Audible(0.05, 0.05) {
		t.Error("Intensity equal to threshold should be silent")
	}
	if Audible(0.03, 0.05) {
		t.Error("Intensity below threshold should be silent")
	}
	if !Audible(0.051, 0.05) {
		t.Error("Intensity above threshold should be audible")
	}
}

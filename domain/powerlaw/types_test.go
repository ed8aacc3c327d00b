package powerlaw

import (
	"errors"
	"testing"
)

func TestBoundsValidate(t *testing.T) {
	cases := []struct {
		name    string
		xmin    float64
		xmax    float64
		wantErr bool
	}{
		{"valid", 0.0001, 10.0, false},
		{"valid unit", 1, 100, false},
		{"zero xmin", 0, 10, true},
		{"negative xmin", -1, 10, true},
		{"inverted", 10, 1, true},
		{"equal", 5, 5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBounds(tc.xmin, tc.xmax)
			if tc.wantErr && err == nil {
				t.Errorf("Expected error for bounds (%g, %g)", tc.xmin, tc.xmax)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected error for bounds (%g, %g): %v", tc.xmin, tc.xmax, err)
			}
			if tc.wantErr && err != nil && !errors.Is(err, ErrSingularityInput) {
				t.Errorf("Expected ErrSingularityInput, got %v", err)
			}
		})
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{XMin: 1, XMax: 10}

	if got := b.Clamp(0.999999); got != 1 {
		t.Errorf("Expected clamp to xmin, got %g", got)
	}
	if got := b.Clamp(10.000001); got != 10 {
		t.Errorf("Expected clamp to xmax, got %g", got)
	}
	if got := b.Clamp(5); got != 5 {
		t.Errorf("In-range value should pass through, got %g", got)
	}
}

func TestSampleClamp(t *testing.T) {
	b := Bounds{XMin: 1, XMax: 10}
	s := Sample{0.5, 5, 11}

	clamped := s.Clamp(b)
	for i, v := range clamped {
		if !b.Contains(v) {
			t.Errorf("Clamped value %d = %g escapes bounds", i, v)
		}
	}
	// Original stays untouched
	if s[0] != 0.5 || s[2] != 11 {
		t.Error("Clamp must not mutate the source sample")
	}
}

func TestFitResultExponent(t *testing.T) {
	r := FitResult{Alpha: -1.5, Sigma: 0.1}
	if r.Exponent() != 1.5 {
		t.Errorf("Expected exponent 1.5, got %g", r.Exponent())
	}
}

func TestMLEConfigValidate(t *testing.T) {
	if err := DefaultMLEConfig().Validate(); err != nil {
		t.Fatalf("Default MLE config should validate: %v", err)
	}

	bad := DefaultMLEConfig()
	bad.BracketLo = 1.0
	if err := bad.Validate(); !errors.Is(err, ErrSingularityInput) {
		t.Errorf("Bracket touching alpha=1 should be rejected, got %v", err)
	}

	bad = DefaultMLEConfig()
	bad.BracketLo = 0.5
	if err := bad.Validate(); !errors.Is(err, ErrSingularityInput) {
		t.Errorf("Bracket spanning alpha=1 should be rejected, got %v", err)
	}

	bad = DefaultMLEConfig()
	bad.BracketHi = bad.BracketLo
	if err := bad.Validate(); err == nil {
		t.Error("Empty bracket should be rejected")
	}
}

func TestFitConfigValidate(t *testing.T) {
	if err := DefaultFitConfig().Validate(); err != nil {
		t.Fatalf("Default fit config should validate: %v", err)
	}
	if (DefaultFitConfig() != FitConfig{NoiseThreshold: 0.01, Truncate: true}) {
		t.Error("Default fit config drifted from reference defaults")
	}

	bad := FitConfig{NoiseThreshold: 1.5, Truncate: true}
	if err := bad.Validate(); err == nil {
		t.Error("Noise threshold above 1 should be rejected")
	}
}

package estimator

import (
	"errors"
	"math"
	"testing"

	"powerfit/domain/powerlaw"
	"powerfit/internal/testkit"
)

func TestFitBinsRecoversExactSlope(t *testing.T) {
	// Counts laid exactly on count = 1e6 * center^(-2): the weighted fit
	// must recover slope -2 with a vanishing standard error
	centers := []float64{1, 2, 4, 8, 16}
	counts := make([]float64, len(centers))
	for i, c := range centers {
		counts[i] = 1e6 * math.Pow(c, -2)
	}

	res, err := FitBins(centers, counts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Alpha-(-2)) > 1e-6 {
		t.Errorf("expected slope -2, got %.9f", res.Alpha)
	}
	if res.Exponent() < 1.999999 || res.Exponent() > 2.000001 {
		t.Errorf("expected exponent 2, got %.9f", res.Exponent())
	}
	if res.Sigma > 1e-6 {
		t.Errorf("exact data should give a near-zero standard error, got %g", res.Sigma)
	}
}

func TestFitBinsDegenerateFlatHistogram(t *testing.T) {
	// All-equal counts: the fit is flat and the covariance collapses;
	// sigma degrades to 0.0 instead of failing
	centers := []float64{1, 2, 4, 8}
	counts := []float64{5, 5, 5, 5}

	res, err := FitBins(centers, counts)
	if err != nil {
		t.Fatalf("degenerate histogram must not fail: %v", err)
	}
	if math.Abs(res.Alpha) > 1e-9 {
		t.Errorf("flat histogram should fit slope 0, got %g", res.Alpha)
	}
	if res.Sigma > 1e-8 {
		t.Errorf("expected sigma 0.0 for the degenerate fit, got %g", res.Sigma)
	}
}

func TestFitBinsSkipsZeroCountBins(t *testing.T) {
	// Zero-count bins have no log and must be excluded before the fit
	centers := []float64{1, 2, 4, 8, 16}
	counts := []float64{100, 0, 25, 0, 6.25}

	res, err := FitBins(centers, counts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The surviving points lie on count = 100 * center^(-1)
	if math.Abs(res.Alpha-(-1)) > 1e-6 {
		t.Errorf("expected slope -1 from the non-zero bins, got %.9f", res.Alpha)
	}
}

func TestFitBinsTwoPointsNoStderr(t *testing.T) {
	// Two points fix the line exactly: no residual degrees of freedom, so
	// sigma is 0.0 by construction
	res, err := FitBins([]float64{1, 10}, []float64{1000, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sigma != 0 {
		t.Errorf("expected sigma 0.0 with zero degrees of freedom, got %g", res.Sigma)
	}
}

func TestFitBinsInsufficientData(t *testing.T) {
	_, err := FitBins([]float64{1, 2}, []float64{0, 5})
	if !errors.Is(err, powerlaw.ErrInsufficientData) {
		t.Errorf("one usable bin must surface insufficient data, got %v", err)
	}

	_, err = FitBins(nil, nil)
	if !errors.Is(err, powerlaw.ErrInsufficientData) {
		t.Errorf("empty bins must surface insufficient data, got %v", err)
	}
}

func TestFitBinsSingularDesign(t *testing.T) {
	// Identical centers leave the slope unidentified
	_, err := FitBins([]float64{2, 2, 2}, []float64{10, 10, 10})
	if !errors.Is(err, powerlaw.ErrInsufficientData) {
		t.Errorf("identical centers must surface insufficient data, got %v", err)
	}
}

func TestGraphicalFitRecoversExponentRange(t *testing.T) {
	sample := testkit.PowerLawSample(5, 50000, powerlaw.Bounds{XMin: 1, XMax: 100}, 1.5)

	g := NewGraphical(powerlaw.DefaultFitConfig())
	res, err := g.Fit(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Alpha >= 0 {
		t.Errorf("decaying power law must fit a negative slope, got %g", res.Alpha)
	}
	if est := res.Exponent(); est < 1.2 || est > 1.8 {
		t.Errorf("graphical exponent estimate %g too far from true 1.5", est)
	}
	if res.Sigma <= 0 {
		t.Errorf("expected a positive standard error on sampled data, got %g", res.Sigma)
	}
}

func TestGraphicalFitWithoutTruncation(t *testing.T) {
	sample := testkit.PowerLawSample(5, 20000, powerlaw.Bounds{XMin: 1, XMax: 100}, 1.5)

	g := NewGraphical(powerlaw.FitConfig{NoiseThreshold: 0.01, Truncate: false})
	res, err := g.Fit(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Alpha >= 0 {
		t.Errorf("expected a negative slope, got %g", res.Alpha)
	}
}

func TestGraphicalFitRejectsBadConfig(t *testing.T) {
	g := NewGraphical(powerlaw.FitConfig{NoiseThreshold: -0.5, Truncate: true})
	if _, err := g.Fit(powerlaw.Sample{1, 2, 3}); err == nil {
		t.Error("invalid noise threshold must be rejected")
	}
}

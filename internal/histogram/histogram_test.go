package histogram

import (
	"errors"
	"testing"

	"powerfit/domain/powerlaw"
	"powerfit/internal/testkit"
)

func TestBuildCountsEveryObservation(t *testing.T) {
	sample := testkit.PowerLawSample(7, 5000, powerlaw.Bounds{XMin: 1, XMax: 100}, 1.5)

	h, err := Build(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var total float64
	for _, c := range h.Counts {
		if c < 0 {
			t.Errorf("negative bin count %g", c)
		}
		total += c
	}
	if total != float64(len(sample)) {
		t.Errorf("expected %d observations binned, got %g", len(sample), total)
	}

	if len(h.Edges) != len(h.Counts)+1 {
		t.Errorf("expected %d edges for %d bins, got %d", len(h.Counts)+1, len(h.Counts), len(h.Edges))
	}
	if len(h.Centers) != len(h.Counts) {
		t.Errorf("centers/counts mismatch: %d vs %d", len(h.Centers), len(h.Counts))
	}
}

func TestBuildEdgesMonotonic(t *testing.T) {
	sample := testkit.PowerLawSample(11, 2000, powerlaw.Bounds{XMin: 0.0001, XMax: 10}, 1.5)

	h, err := Build(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(h.Edges); i++ {
		if h.Edges[i] <= h.Edges[i-1] {
			t.Fatalf("edges not strictly increasing at %d: %g then %g", i, h.Edges[i-1], h.Edges[i])
		}
	}
	for i, c := range h.Centers {
		if c <= h.Edges[i] || c >= h.Edges[i+1] {
			t.Errorf("center %d = %g outside its bin [%g, %g]", i, c, h.Edges[i], h.Edges[i+1])
		}
	}
}

func TestBuildDensityAdaptiveBinning(t *testing.T) {
	b := powerlaw.Bounds{XMin: 1, XMax: 100}
	small, err := Build(testkit.PowerLawSample(3, 200, b, 1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	large, err := Build(testkit.PowerLawSample(3, 20000, b, 1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Freedman-Diaconis width shrinks as n^(-1/3): more data, more bins
	if large.Len() <= small.Len() {
		t.Errorf("expected more bins for the larger sample: %d (n=200) vs %d (n=20000)", small.Len(), large.Len())
	}
}

func TestBuildDegenerateSample(t *testing.T) {
	h, err := Build(powerlaw.Sample{3, 3, 3, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("all-equal sample should produce a single bin, got %d", h.Len())
	}
	if h.Counts[0] != 4 {
		t.Errorf("expected all 4 observations in the single bin, got %g", h.Counts[0])
	}
}

func TestBuildEmptySample(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, powerlaw.ErrInsufficientData) {
		t.Errorf("empty sample must surface insufficient data, got %v", err)
	}
}

func TestTruncateAtNoiseFloor(t *testing.T) {
	h := &Histogram{
		Edges:   []float64{0, 1, 2, 3, 4, 5, 6},
		Centers: []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5},
		Counts:  []float64{100, 50, 20, 0, 5, 2},
	}

	// floor(100 * 0.01) = 1: the zero bin at index 3 is the first at or
	// below the floor, so only the leading three bins survive
	cut := h.TruncateAtNoiseFloor(0.01)
	if cut.Len() != 3 {
		t.Fatalf("expected 3 surviving bins, got %d", cut.Len())
	}
	for i, want := range []float64{100, 50, 20} {
		if cut.Counts[i] != want {
			t.Errorf("bin %d: expected count %g, got %g", i, want, cut.Counts[i])
		}
	}
	if len(cut.Edges) != 4 {
		t.Errorf("expected 4 edges after truncation, got %d", len(cut.Edges))
	}
}

func TestTruncateAtNoiseFloorKeepsLeadingRunOnly(t *testing.T) {
	h := &Histogram{
		Edges:   []float64{0, 1, 2, 3, 4},
		Centers: []float64{0.5, 1.5, 2.5, 3.5},
		Counts:  []float64{100, 1, 80, 60},
	}

	// The bin at index 1 is noise; the above-noise bins after it are
	// discarded with it
	cut := h.TruncateAtNoiseFloor(0.05)
	if cut.Len() != 1 {
		t.Fatalf("expected only the leading bin, got %d", cut.Len())
	}
}

func TestTruncateNoNoiseBins(t *testing.T) {
	h := &Histogram{
		Edges:   []float64{0, 1, 2, 3},
		Centers: []float64{0.5, 1.5, 2.5},
		Counts:  []float64{10, 5, 3},
	}

	// floor(10 * 0.01) = 0 and every count is above it: unchanged
	cut := h.TruncateAtNoiseFloor(0.01)
	if cut.Len() != 3 {
		t.Errorf("expected all bins kept, got %d", cut.Len())
	}
}

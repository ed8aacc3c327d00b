package histogram

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"

	"powerfit/domain/powerlaw"
)

// Histogram holds bin edges, midpoints and counts over a raw sample
type Histogram struct {
	Edges   []float64 `json:"edges"`
	Centers []float64 `json:"centers"`
	Counts  []float64 `json:"counts"`
}

// Build bins a sample with a Freedman-Diaconis bin width
// (2 * IQR * n^(-1/3)) applied to the raw, non-logged values. Denser
// samples get more bins.
func Build(x powerlaw.Sample) (*Histogram, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty sample", powerlaw.ErrInsufficientData)
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	edges, err := freedmanDiaconisEdges(sorted)
	if err != nil {
		return nil, err
	}

	counts := gstat.Histogram(nil, edges, sorted, nil)

	centers := make([]float64, len(counts))
	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}

	return &Histogram{Edges: edges, Centers: centers, Counts: counts}, nil
}

// freedmanDiaconisEdges computes monotonically increasing bin edges over
// sorted data. The final edge sits one ulp past the maximum so the last
// observation lands inside the last bin.
func freedmanDiaconisEdges(sorted []float64) ([]float64, error) {
	n := len(sorted)
	min, max := sorted[0], sorted[n-1]

	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("%w: sample contains non-finite values", powerlaw.ErrSingularityInput)
	}

	if min == max {
		// Degenerate sample: a single bin holding everything
		return []float64{min, math.Nextafter(max, math.Inf(1))}, nil
	}

	q25, err := stats.Percentile(sorted, 25)
	if err != nil {
		return nil, err
	}
	q75, err := stats.Percentile(sorted, 75)
	if err != nil {
		return nil, err
	}

	width := 2 * (q75 - q25) * math.Pow(float64(n), -1.0/3.0)

	var nBins int
	if width <= 0 {
		// Zero IQR with spread data: fall back to a Sturges bin count
		nBins = int(math.Ceil(math.Log2(float64(n)))) + 1
	} else {
		nBins = int(math.Ceil((max - min) / width))
	}
	if nBins < 1 {
		nBins = 1
	}

	edges := make([]float64, nBins+1)
	floats.Span(edges, min, max)
	edges[nBins] = math.Nextafter(max, math.Inf(1))
	return edges, nil
}

// Len returns the number of bins
func (h *Histogram) Len() int {
	return len(h.Counts)
}

// PeakCount returns the largest bin count
func (h *Histogram) PeakCount() float64 {
	if h.Len() == 0 {
		return 0
	}
	return floats.Max(h.Counts)
}

// TruncateAtNoiseFloor keeps the leading contiguous run of above-noise bins.
// The noise floor is floor(peak * threshold); the first bin (in index order)
// at or below it, and everything after it, is discarded. Without such a bin
// the histogram is returned unchanged.
func (h *Histogram) TruncateAtNoiseFloor(threshold float64) *Histogram {
	floor := math.Floor(h.PeakCount() * threshold)

	cut := -1
	for i, c := range h.Counts {
		if c <= floor {
			cut = i
			break
		}
	}
	if cut < 0 {
		return h
	}

	return &Histogram{
		Edges:   h.Edges[:cut+1],
		Centers: h.Centers[:cut],
		Counts:  h.Counts[:cut],
	}
}

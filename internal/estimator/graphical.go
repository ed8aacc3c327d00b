package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"powerfit/domain/powerlaw"
	"powerfit/internal/histogram"
)

// Graphical estimates the power-law slope from a log-log least-squares fit
// over a noise-truncated histogram
type Graphical struct {
	cfg powerlaw.FitConfig
}

// NewGraphical creates a graphical estimator
func NewGraphical(cfg powerlaw.FitConfig) *Graphical {
	return &Graphical{cfg: cfg}
}

// Fit bins the sample, truncates the noise-floor tail when configured, and
// fits log10(count) = a*log10(center) + b by weighted least squares.
// The returned Alpha is the slope a; Sigma is its standard error, 0.0 when
// the covariance cannot be estimated.
func (g *Graphical) Fit(x powerlaw.Sample) (powerlaw.FitResult, error) {
	if err := g.cfg.Validate(); err != nil {
		return powerlaw.FitResult{}, err
	}

	hist, err := histogram.Build(x)
	if err != nil {
		return powerlaw.FitResult{}, err
	}
	if g.cfg.Truncate {
		hist = hist.TruncateAtNoiseFloor(g.cfg.NoiseThreshold)
	}

	return FitBins(hist.Centers, hist.Counts)
}

// FitBins runs the weighted log-log fit over prepared bin centers and counts.
// The per-point uncertainty is sqrt(count) applied to the log10 residual,
// Poisson-style; the unlogged count doubles as the sigma surrogate to stay
// compatible with the reference estimator.
func FitBins(centers, counts []float64) (powerlaw.FitResult, error) {
	if len(centers) != len(counts) {
		return powerlaw.FitResult{}, fmt.Errorf("centers and counts length mismatch: %d vs %d", len(centers), len(counts))
	}

	// Zero-count bins have no defined log; drop them before the fit
	var lx, ly, w []float64
	for i := range counts {
		if counts[i] <= 0 || centers[i] <= 0 {
			continue
		}
		xi := math.Log10(centers[i])
		yi := math.Log10(counts[i])
		if math.IsNaN(xi) || math.IsInf(xi, 0) || math.IsNaN(yi) || math.IsInf(yi, 0) {
			continue
		}
		lx = append(lx, xi)
		ly = append(ly, yi)
		// weight = 1/sigma^2 with sigma = sqrt(count)
		w = append(w, 1/counts[i])
	}

	if len(lx) < 2 {
		return powerlaw.FitResult{}, fmt.Errorf("%w: %d usable bins after truncation and log filtering", powerlaw.ErrInsufficientData, len(lx))
	}

	// Weighted normal equations for [slope, intercept]
	var s00, s01, s11, t0, t1 float64
	for i := range lx {
		s00 += w[i] * lx[i] * lx[i]
		s01 += w[i] * lx[i]
		s11 += w[i]
		t0 += w[i] * lx[i] * ly[i]
		t1 += w[i] * ly[i]
	}

	normal := mat.NewDense(2, 2, []float64{s00, s01, s01, s11})
	rhs := mat.NewVecDense(2, []float64{t0, t1})

	var theta mat.VecDense
	if err := theta.SolveVec(normal, rhs); err != nil {
		// All usable bins share one center: no slope exists
		return powerlaw.FitResult{}, fmt.Errorf("%w: singular design matrix", powerlaw.ErrInsufficientData)
	}

	slope := theta.AtVec(0)
	intercept := theta.AtVec(1)

	return powerlaw.FitResult{
		Alpha: slope,
		Sigma: slopeStderr(normal, lx, ly, w, slope, intercept),
	}, nil
}

// slopeStderr derives the slope's standard error from the inverse normal
// matrix scaled by reduced chi-square. A singular or otherwise inestimable
// covariance degrades to 0.0 instead of failing the fit.
func slopeStderr(normal *mat.Dense, lx, ly, w []float64, slope, intercept float64) float64 {
	dof := len(lx) - 2
	if dof <= 0 {
		return 0
	}

	var chi2 float64
	for i := range lx {
		r := ly[i] - slope*lx[i] - intercept
		chi2 += w[i] * r * r
	}

	var inv mat.Dense
	if err := inv.Inverse(normal); err != nil {
		return 0
	}

	cov := inv.At(0, 0) * chi2 / float64(dof)
	if math.IsNaN(cov) || cov < 0 {
		return 0
	}
	return math.Sqrt(cov)
}

package powerlaw

import (
	"fmt"
	"math"
)

// Bounds defines the support [XMin, XMax] of a bounded power-law distribution
type Bounds struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
}

// NewBounds creates validated bounds for a bounded power-law support
func NewBounds(xmin, xmax float64) (Bounds, error) {
	b := Bounds{XMin: xmin, XMax: xmax}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// Validate checks the support invariant 0 < xmin < xmax
func (b Bounds) Validate() error {
	if math.IsNaN(b.XMin) || math.IsNaN(b.XMax) {
		return fmt.Errorf("%w: bounds contain NaN", ErrSingularityInput)
	}
	if b.XMin <= 0 {
		return fmt.Errorf("%w: xmin must be positive, got %g", ErrSingularityInput, b.XMin)
	}
	if b.XMin >= b.XMax {
		return fmt.Errorf("%w: xmin (%g) must be below xmax (%g)", ErrSingularityInput, b.XMin, b.XMax)
	}
	return nil
}

// Contains reports whether v lies within the support
func (b Bounds) Contains(v float64) bool {
	return v >= b.XMin && v <= b.XMax
}

// Clamp forces v into the support. Sample values can land just outside the
// bounds through floating-point rounding at the endpoints; estimators clamp
// rather than reject them.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.XMin {
		return b.XMin
	}
	if v > b.XMax {
		return b.XMax
	}
	return v
}

// Sample is an ordered sequence of positive reals drawn from the support
type Sample []float64

// Clamp returns a copy of the sample with every value forced into bounds
func (s Sample) Clamp(b Bounds) Sample {
	out := make(Sample, len(s))
	for i, v := range s {
		out[i] = b.Clamp(v)
	}
	return out
}

// FitResult is the graphical estimator's output. Alpha is the fitted log-log
// slope (negative for a decaying power law); the exponent estimate is its
// negation. Sigma is the slope's standard error, 0.0 when inestimable.
type FitResult struct {
	Alpha float64 `json:"alpha"`
	Sigma float64 `json:"sigma"`
}

// Exponent returns the power-law exponent implied by the fitted slope
func (r FitResult) Exponent() float64 {
	return -r.Alpha
}

// MLEResult is the maximum-likelihood estimator's output on success
type MLEResult struct {
	Alpha float64 `json:"alpha"`
}

// FitConfig configures the graphical estimator
type FitConfig struct {
	// NoiseThreshold is the fraction of the peak bin count below which bins
	// are considered sampling noise
	NoiseThreshold float64 `json:"noise_threshold"`
	// Truncate discards the noise-floor tail bins before fitting
	Truncate bool `json:"truncate"`
}

// DefaultFitConfig returns the reference defaults (threshold 0.01, truncation on)
func DefaultFitConfig() FitConfig {
	return FitConfig{
		NoiseThreshold: 0.01,
		Truncate:       true,
	}
}

// Validate checks the noise threshold range
func (c FitConfig) Validate() error {
	if c.NoiseThreshold < 0 || c.NoiseThreshold >= 1 || math.IsNaN(c.NoiseThreshold) {
		return fmt.Errorf("noise threshold must be in [0, 1), got %g", c.NoiseThreshold)
	}
	return nil
}

// MLEConfig configures the maximum-likelihood estimator's root search
type MLEConfig struct {
	// BracketLo and BracketHi bound the alpha search. The bracket must stay
	// strictly above the alpha=1 singularity.
	BracketLo float64 `json:"bracket_lo"`
	BracketHi float64 `json:"bracket_hi"`
	// Tolerance is the root-finder convergence tolerance
	Tolerance float64 `json:"tolerance"`
	// MaxIterations caps the root-finder iteration count
	MaxIterations int `json:"max_iterations"`
}

// DefaultMLEConfig returns the reference defaults (bracket [1.1, 10])
func DefaultMLEConfig() MLEConfig {
	return MLEConfig{
		BracketLo:     1.1,
		BracketHi:     10,
		Tolerance:     1e-9,
		MaxIterations: 100,
	}
}

// Validate rejects brackets that span or touch the alpha=1 singularity
func (c MLEConfig) Validate() error {
	if c.BracketLo <= 1 {
		return fmt.Errorf("%w: bracket low %g touches the alpha=1 singularity", ErrSingularityInput, c.BracketLo)
	}
	if c.BracketHi <= c.BracketLo {
		return fmt.Errorf("%w: bracket [%g, %g] is empty", ErrSingularityInput, c.BracketLo, c.BracketHi)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

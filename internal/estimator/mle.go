package estimator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"powerfit/domain/powerlaw"
	"powerfit/internal/rootfind"
)

// MLE estimates the exponent of a bounded power law by solving the
// likelihood's stationarity equation with a bracketed root search
type MLE struct {
	cfg powerlaw.MLEConfig
}

// NewMLE creates a maximum-likelihood estimator
func NewMLE(cfg powerlaw.MLEConfig) *MLE {
	return &MLE{cfg: cfg}
}

// Estimate solves f(alpha) = 0 for the log-likelihood derivative
//
//	f(a) = -sum(log x_i) + n/(a-1)
//	     + [n / (xmin^(1-a) - xmax^(1-a))] * (xmin^(1-a)*ln(xmin) - xmax^(1-a)*ln(xmax))
//
// over the configured bracket. A bracket without a sign change or a root
// search that fails to converge reports the failure explicitly; no partial
// estimate is returned.
func (m *MLE) Estimate(x powerlaw.Sample, b powerlaw.Bounds) (powerlaw.MLEResult, error) {
	if err := m.cfg.Validate(); err != nil {
		return powerlaw.MLEResult{}, err
	}
	if err := b.Validate(); err != nil {
		return powerlaw.MLEResult{}, err
	}
	if len(x) == 0 {
		return powerlaw.MLEResult{}, fmt.Errorf("%w: empty sample", powerlaw.ErrInsufficientData)
	}

	logs := make([]float64, len(x))
	for i, v := range x {
		if v <= 0 {
			return powerlaw.MLEResult{}, fmt.Errorf("%w: sample value %g is not positive", powerlaw.ErrSingularityInput, v)
		}
		logs[i] = math.Log(v)
	}
	sumLog := floats.Sum(logs)

	n := float64(len(x))
	lnMin := math.Log(b.XMin)
	lnMax := math.Log(b.XMax)

	deriv := func(alpha float64) float64 {
		e := 1 - alpha
		// Powers in log domain: xmin^(1-a) = exp((1-a)*ln(xmin)) keeps the
		// terms finite for extreme bounds
		tMin := math.Exp(e * lnMin)
		tMax := math.Exp(e * lnMax)
		return -sumLog + n/(alpha-1) + n*(tMin*lnMin-tMax*lnMax)/(tMin-tMax)
	}

	res, err := rootfind.Brent(deriv, m.cfg.BracketLo, m.cfg.BracketHi, m.cfg.Tolerance, m.cfg.MaxIterations)
	if err != nil {
		switch {
		case errors.Is(err, rootfind.ErrNoSignChange):
			return powerlaw.MLEResult{}, fmt.Errorf("%w: [%g, %g]", powerlaw.ErrInvalidBracket, m.cfg.BracketLo, m.cfg.BracketHi)
		case errors.Is(err, rootfind.ErrMaxIterations):
			return powerlaw.MLEResult{}, fmt.Errorf("%w after %d iterations", powerlaw.ErrNoConvergence, res.Iterations)
		default:
			return powerlaw.MLEResult{}, fmt.Errorf("%w: %v", powerlaw.ErrSingularityInput, err)
		}
	}

	return powerlaw.MLEResult{Alpha: res.Root}, nil
}

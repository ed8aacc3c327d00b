package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"powerfit/domain/powerlaw"
	"powerfit/ports"
)

// Config describes a bounded power-law source: density proportional to
// x^(-alpha) on [XMin, XMax]
type Config struct {
	Bounds powerlaw.Bounds
	Alpha  float64
	Seed   int64
}

// Validate rejects invalid supports and the alpha=1 singularity.
// alpha=1 needs a logarithmic CDF inversion that the closed form below
// cannot express; it is rejected, not silently corrected.
func (c Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if c.Alpha == 1 {
		return fmt.Errorf("%w: alpha=1 has no power-form inverse CDF", powerlaw.ErrSingularityInput)
	}
	if math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha=%g", powerlaw.ErrSingularityInput, c.Alpha)
	}
	return nil
}

// Transform maps uniforms in [0, 1] to bounded power-law variates via the
// analytic inverse CDF. With e = 1 - alpha:
//
//	x = ((xmax^e - xmin^e)*u + xmin^e)^(1/e)
//
// Pure function of its inputs. Endpoint uniforms map to the support
// endpoints exactly.
func Transform(b powerlaw.Bounds, alpha float64, u []float64) (powerlaw.Sample, error) {
	cfg := Config{Bounds: b, Alpha: alpha}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := 1 - alpha
	lo := math.Pow(b.XMin, e)
	hi := math.Pow(b.XMax, e)
	span := hi - lo

	out := make(powerlaw.Sample, len(u))
	for i, ui := range u {
		switch {
		case ui == 0:
			out[i] = b.XMin
		case ui == 1:
			out[i] = b.XMax
		default:
			// Clamp guards the last-ulp rounding of Pow at the endpoints
			out[i] = b.Clamp(math.Pow(span*ui+lo, 1/e))
		}
	}
	return out, nil
}

// DrawFrom generates n variates pulling uniforms from src
func DrawFrom(src ports.UniformSource, b powerlaw.Bounds, alpha float64, n int) (powerlaw.Sample, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample size must be at least 1, got %d", n)
	}
	u := make([]float64, n)
	for i := range u {
		u[i] = src.Float64()
	}
	return Transform(b, alpha, u)
}

// Draw generates n variates from a freshly seeded source
func Draw(cfg Config, n int) (powerlaw.Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return DrawFrom(rng, cfg.Bounds, cfg.Alpha, n)
}

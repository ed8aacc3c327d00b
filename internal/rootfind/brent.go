package rootfind

import (
	"errors"
	"math"
)

// Errors surfaced by the bracketed solver
var (
	// ErrNoSignChange means f(lo) and f(hi) share a sign, so the bracket
	// cannot be guaranteed to contain a root
	ErrNoSignChange = errors.New("rootfind: bracket does not contain a sign change")

	// ErrMaxIterations means the iteration cap was hit before convergence
	ErrMaxIterations = errors.New("rootfind: iteration limit reached")

	// ErrNonFinite means the function returned NaN or Inf at a bracket end
	ErrNonFinite = errors.New("rootfind: function is not finite on the bracket")
)

// Result reports the outcome of a root search
type Result struct {
	Root       float64
	Iterations int
	Converged  bool
}

// Brent finds a root of f in [lo, hi] with Brent's method: bisection safety,
// secant and inverse quadratic steps when they stay inside the bracket.
// Requires f(lo) and f(hi) to have opposite signs.
func Brent(f func(float64) float64, lo, hi, tol float64, maxIter int) (Result, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)

	if math.IsNaN(fa) || math.IsInf(fa, 0) || math.IsNaN(fb) || math.IsInf(fb, 0) {
		return Result{}, ErrNonFinite
	}
	if fa == 0 {
		return Result{Root: a, Converged: true}, nil
	}
	if fb == 0 {
		return Result{Root: b, Converged: true}, nil
	}
	if fa*fb > 0 {
		return Result{}, ErrNoSignChange
	}

	c, fc := a, fa
	d := b - a
	e := d

	for iter := 1; iter <= maxIter; iter++ {
		if fb*fc > 0 {
			// Root no longer between b and c: reset the contrapoint
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*machEps*math.Abs(b) + tol/2
		xm := (c - b) / 2

		if math.Abs(xm) <= tol1 || fb == 0 {
			return Result{Root: b, Iterations: iter, Converged: true}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt an interpolation step
			var p, q float64
			s := fb / fa
			if a == c {
				// Secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// Inverse quadratic
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return Result{Root: b, Iterations: maxIter, Converged: false}, ErrMaxIterations
}

const machEps = 2.220446049250313e-16

package powerlaw

import (
	"errors"
)

// Domain errors - centralized error definitions for estimation failures.
// All of these are local, recoverable conditions: one failed trial must never
// abort a batch of trials.
var (
	// ErrSingularityInput marks inputs touching the alpha=1 singularity or an
	// invalid support (xmin >= xmax, xmin <= 0)
	ErrSingularityInput = errors.New("singular estimation input")

	// ErrInvalidBracket marks a root-finder bracket without a sign change
	ErrInvalidBracket = errors.New("bracket does not contain a sign change")

	// ErrNoConvergence marks a root search that hit its iteration cap
	ErrNoConvergence = errors.New("root-finder did not converge")

	// ErrInsufficientData marks a fit with fewer than 2 usable points after
	// truncation and log filtering
	ErrInsufficientData = errors.New("insufficient data for fit")

	// ErrDegenerateFit marks a singular least-squares covariance. The
	// graphical estimator recovers locally (sigma = 0.0) instead of
	// surfacing it.
	ErrDegenerateFit = errors.New("degenerate least-squares fit")
)

// IsRecoverable reports whether err belongs to the estimation taxonomy and
// should be logged per-trial rather than aborting a sweep
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSingularityInput) ||
		errors.Is(err, ErrInvalidBracket) ||
		errors.Is(err, ErrNoConvergence) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDegenerateFit)
}

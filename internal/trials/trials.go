package trials

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"

	"powerfit/domain/core"
	"powerfit/domain/powerlaw"
	"powerfit/internal/estimator"
	"powerfit/internal/sampler"
)

// Config drives an estimator-comparison sweep: for every sample size, draw
// TrialsPerSize independent samples with the known exponent and feed each to
// both estimators
type Config struct {
	Sizes         []int              `json:"sizes"`
	TrialsPerSize int                `json:"trials_per_size"`
	Alpha         float64            `json:"alpha"`
	Bounds        powerlaw.Bounds    `json:"bounds"`
	Seed          int64              `json:"seed"`
	Fit           powerlaw.FitConfig `json:"fit"`
	MLE           powerlaw.MLEConfig `json:"mle"`
}

// DefaultConfig mirrors the reference comparison scenario
func DefaultConfig() Config {
	return Config{
		Sizes:         []int{100, 1000, 10000, 100000},
		TrialsPerSize: 10,
		Alpha:         1.5,
		Bounds:        powerlaw.Bounds{XMin: 0.0001, XMax: 10.0},
		Seed:          42,
		Fit:           powerlaw.DefaultFitConfig(),
		MLE:           powerlaw.DefaultMLEConfig(),
	}
}

// Estimate is one estimator's outcome on one trial. Err carries the failure
// reason for trials where the estimator explicitly declined to answer.
type Estimate struct {
	Alpha float64 `json:"alpha"`
	Sigma float64 `json:"sigma,omitempty"`
	Err   string  `json:"error,omitempty"`
}

// Failed reports whether the estimator produced no usable estimate
func (e Estimate) Failed() bool {
	return e.Err != ""
}

// Trial pairs both estimators' outcomes on one shared sample
type Trial struct {
	ID        core.TrialID `json:"id"`
	N         int          `json:"n"`
	Index     int          `json:"index"`
	Graphical Estimate     `json:"graphical"`
	MLE       Estimate     `json:"mle"`
}

// SizeSummary aggregates trial outcomes at one sample size
type SizeSummary struct {
	N                  int     `json:"n"`
	Trials             int     `json:"trials"`
	GraphicalMeanAlpha float64 `json:"graphical_mean_alpha"`
	MLEMeanAlpha       float64 `json:"mle_mean_alpha"`
	GraphicalMAE       float64 `json:"graphical_mae"`
	MLEMAE             float64 `json:"mle_mae"`
	GraphicalFailures  int     `json:"graphical_failures"`
	MLEFailures        int     `json:"mle_failures"`
}

// Sweep is the full comparison result across sample sizes
type Sweep struct {
	ID        core.SweepID   `json:"id"`
	Config    Config         `json:"config"`
	StartedAt core.Timestamp `json:"started_at"`
	Trials    []Trial        `json:"trials"`
	Summaries []SizeSummary  `json:"summaries"`
}

// Run executes the sweep sequentially. Estimator failures are recorded on
// the trial and never abort the batch.
func Run(cfg Config) (*Sweep, error) {
	if err := cfg.Bounds.Validate(); err != nil {
		return nil, err
	}
	if err := (sampler.Config{Bounds: cfg.Bounds, Alpha: cfg.Alpha}).Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Fit.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MLE.Validate(); err != nil {
		return nil, err
	}

	sweep := &Sweep{
		ID:        core.NewSweepID(),
		Config:    cfg,
		StartedAt: core.Now(),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	graphical := estimator.NewGraphical(cfg.Fit)
	mle := estimator.NewMLE(cfg.MLE)

	for _, n := range cfg.Sizes {
		for i := 0; i < cfg.TrialsPerSize; i++ {
			sample, err := sampler.DrawFrom(rng, cfg.Bounds, cfg.Alpha, n)
			if err != nil {
				return nil, err
			}
			sample = sample.Clamp(cfg.Bounds)

			trial := Trial{ID: core.TrialID(core.NewID()), N: n, Index: i}

			if fit, err := graphical.Fit(sample); err != nil {
				trial.Graphical = Estimate{Err: err.Error()}
				slog.Debug("graphical fit failed", "n", n, "trial", i, "err", err)
			} else {
				// The fitted slope is negative; the exponent estimate is -slope
				trial.Graphical = Estimate{Alpha: fit.Exponent(), Sigma: fit.Sigma}
			}

			if res, err := mle.Estimate(sample, cfg.Bounds); err != nil {
				trial.MLE = Estimate{Err: err.Error()}
				slog.Debug("mle estimate failed", "n", n, "trial", i, "err", err)
			} else {
				trial.MLE = Estimate{Alpha: res.Alpha}
			}

			sweep.Trials = append(sweep.Trials, trial)
		}
		sweep.Summaries = append(sweep.Summaries, summarize(sweep.Trials, n, cfg.Alpha))
	}

	return sweep, nil
}

// summarize aggregates the trials at sample size n against the true alpha
func summarize(allTrials []Trial, n int, trueAlpha float64) SizeSummary {
	s := SizeSummary{N: n}

	var gAlphas, gErrs, mAlphas, mErrs []float64
	for _, t := range allTrials {
		if t.N != n {
			continue
		}
		s.Trials++
		if t.Graphical.Failed() {
			s.GraphicalFailures++
		} else {
			gAlphas = append(gAlphas, t.Graphical.Alpha)
			gErrs = append(gErrs, math.Abs(t.Graphical.Alpha-trueAlpha))
		}
		if t.MLE.Failed() {
			s.MLEFailures++
		} else {
			mAlphas = append(mAlphas, t.MLE.Alpha)
			mErrs = append(mErrs, math.Abs(t.MLE.Alpha-trueAlpha))
		}
	}

	s.GraphicalMeanAlpha = meanOrNaN(gAlphas)
	s.MLEMeanAlpha = meanOrNaN(mAlphas)
	s.GraphicalMAE = meanOrNaN(gErrs)
	s.MLEMAE = meanOrNaN(mErrs)
	return s
}

func meanOrNaN(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return math.NaN()
	}
	return m
}

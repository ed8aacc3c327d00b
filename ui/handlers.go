package ui

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"powerfit/internal/trials"
)

// handleSweep runs a comparison sweep and returns it as JSON. Query
// parameters override the configured defaults: sizes, trials, alpha, xmin,
// xmax, seed.
func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	if !a.sweepSem.TryAcquire(1) {
		http.Error(w, "a sweep is already running", http.StatusTooManyRequests)
		return
	}
	defer a.sweepSem.Release(1)

	cfg, err := a.sweepConfigFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sweep, err := trials.Run(cfg)
	if err != nil {
		slog.Error("sweep failed", "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	a.mu.Lock()
	a.lastSweep = sweep
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sweep); err != nil {
		slog.Error("failed to encode sweep", "err", err)
	}
}

// handleIndex renders the latest sweep summary as HTML
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	sweep := a.lastSweep
	a.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(renderPage(sweep))
}

func (a *App) sweepConfigFromQuery(r *http.Request) (trials.Config, error) {
	cfg := trials.Config{
		Sizes:         a.cfg.Sweep.Sizes,
		TrialsPerSize: a.cfg.Sweep.TrialsPerSize,
		Alpha:         a.cfg.Sweep.Alpha,
		Bounds:        a.cfg.Sweep.Bounds,
		Seed:          a.cfg.Sweep.Seed,
		Fit:           a.cfg.Sweep.Fit,
		MLE:           a.cfg.Sweep.MLE,
	}

	q := r.URL.Query()
	var err error

	if v := q.Get("sizes"); v != "" {
		var sizes []int
		for _, p := range strings.Split(v, ",") {
			n, convErr := strconv.Atoi(strings.TrimSpace(p))
			if convErr != nil || n < 1 {
				return cfg, &queryError{"sizes must be positive integers"}
			}
			sizes = append(sizes, n)
		}
		cfg.Sizes = sizes
	}
	if v := q.Get("trials"); v != "" {
		if cfg.TrialsPerSize, err = strconv.Atoi(v); err != nil || cfg.TrialsPerSize < 1 {
			return cfg, &queryError{"trials must be a positive integer"}
		}
	}
	if v := q.Get("alpha"); v != "" {
		if cfg.Alpha, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, &queryError{"alpha must be a number"}
		}
	}
	if v := q.Get("xmin"); v != "" {
		if cfg.Bounds.XMin, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, &queryError{"xmin must be a number"}
		}
	}
	if v := q.Get("xmax"); v != "" {
		if cfg.Bounds.XMax, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, &queryError{"xmax must be a number"}
		}
	}
	if v := q.Get("seed"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, &queryError{"seed must be an integer"}
		}
	}

	return cfg, nil
}

type queryError struct {
	msg string
}

func (e *queryError) Error() string {
	return e.msg
}

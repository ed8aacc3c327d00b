package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"powerfit/adapters/report"
	"powerfit/internal/config"
	"powerfit/internal/trials"
	"powerfit/ui"
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelInfo,
		}),
	))

	// .env is optional; the environment wins either way
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		app := ui.NewApp(cfg)
		if err := app.Start(); err != nil {
			slog.Error("report server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	runSweep(cfg)
}

// runSweep executes one comparison sweep and writes the report file
func runSweep(cfg *config.Config) {
	slog.Info("starting sweep",
		"alpha", cfg.Sweep.Alpha,
		"xmin", cfg.Sweep.Bounds.XMin,
		"xmax", cfg.Sweep.Bounds.XMax,
		"sizes", cfg.Sweep.Sizes,
		"trials_per_size", cfg.Sweep.TrialsPerSize,
		"seed", cfg.Sweep.Seed,
	)

	sweep, err := trials.Run(trials.Config{
		Sizes:         cfg.Sweep.Sizes,
		TrialsPerSize: cfg.Sweep.TrialsPerSize,
		Alpha:         cfg.Sweep.Alpha,
		Bounds:        cfg.Sweep.Bounds,
		Seed:          cfg.Sweep.Seed,
		Fit:           cfg.Sweep.Fit,
		MLE:           cfg.Sweep.MLE,
	})
	if err != nil {
		slog.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	for _, s := range sweep.Summaries {
		slog.Info("size summary",
			"n", s.N,
			"graphical_alpha", s.GraphicalMeanAlpha,
			"graphical_mae", s.GraphicalMAE,
			"mle_alpha", s.MLEMeanAlpha,
			"mle_mae", s.MLEMAE,
			"graphical_failures", s.GraphicalFailures,
			"mle_failures", s.MLEFailures,
		)
	}

	if err := report.NewWriter(cfg.Report.File).Write(sweep); err != nil {
		slog.Error("report write failed", "err", err)
		os.Exit(1)
	}
	slog.Info("sweep complete", "id", sweep.ID.String(), "report", cfg.Report.File)
}

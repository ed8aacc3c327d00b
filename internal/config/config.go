package config

import (
	"os"
	"strconv"
	"strings"

	"powerfit/domain/powerlaw"
	"powerfit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sweep  SweepConfig
	Server ServerConfig
	Report ReportConfig
}

// SweepConfig holds the estimator-comparison sweep settings
type SweepConfig struct {
	// Sizes lists the sample sizes the sweep iterates over
	Sizes []int
	// TrialsPerSize is the number of independent trials per sample size
	TrialsPerSize int
	// Alpha is the true exponent used by the sampler
	Alpha float64
	// Bounds is the bounded power-law support
	Bounds powerlaw.Bounds
	// Seed drives the uniform random source
	Seed int64
	// Fit configures the graphical estimator
	Fit powerlaw.FitConfig
	// MLE configures the maximum-likelihood estimator
	MLE powerlaw.MLEConfig
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port string
}

// ReportConfig holds report output settings
type ReportConfig struct {
	// File is the sweep report output path (.csv or .xlsx)
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	sweep, err := loadSweepConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep configuration")
	}

	config := &Config{
		Sweep:  *sweep,
		Server: ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Report: ReportConfig{File: getEnvOrDefault("REPORT_FILE", "powerfit_report.xlsx")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSweepConfig() (*SweepConfig, error) {
	sizes, err := parseSizes(getEnvOrDefault("SWEEP_SIZES", "100,1000,10000,100000"))
	if err != nil {
		return nil, err
	}

	return &SweepConfig{
		Sizes:         sizes,
		TrialsPerSize: getEnvIntOrDefault("TRIALS_PER_SIZE", 10),
		Alpha:         getEnvFloatOrDefault("ALPHA", 1.5),
		Bounds: powerlaw.Bounds{
			XMin: getEnvFloatOrDefault("XMIN", 0.0001),
			XMax: getEnvFloatOrDefault("XMAX", 10.0),
		},
		Seed: getEnvInt64OrDefault("SEED", 42),
		Fit: powerlaw.FitConfig{
			NoiseThreshold: getEnvFloatOrDefault("NOISE_THRESHOLD", 0.01),
			Truncate:       getEnvBoolOrDefault("TRUNCATE", true),
		},
		MLE: powerlaw.MLEConfig{
			BracketLo:     getEnvFloatOrDefault("BRACKET_LO", 1.1),
			BracketHi:     getEnvFloatOrDefault("BRACKET_HI", 10),
			Tolerance:     getEnvFloatOrDefault("TOLERANCE", 1e-9),
			MaxIterations: getEnvIntOrDefault("MAX_ITERATIONS", 100),
		},
	}, nil
}

func parseSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, errors.ConfigInvalid("SWEEP_SIZES must be a comma-separated list of positive integers, got " + raw)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.ConfigInvalid("SWEEP_SIZES is empty")
	}
	return sizes, nil
}

func validateConfig(config *Config) error {
	if err := config.Sweep.Bounds.Validate(); err != nil {
		return errors.WithCode(errors.CodeSingularityInput, err)
	}
	if config.Sweep.Alpha == 1 {
		return errors.SingularityInput("ALPHA=1 requires a logarithmic CDF and is not supported")
	}
	if config.Sweep.TrialsPerSize < 1 {
		return errors.ConfigInvalid("TRIALS_PER_SIZE must be at least 1")
	}
	if err := config.Sweep.Fit.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := config.Sweep.MLE.Validate(); err != nil {
		return errors.WithCode(errors.CodeSingularityInput, err)
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

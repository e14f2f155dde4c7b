// Package config provides the configuration management for the estimator
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvFloat64 returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as float64, or the default value if
// not set or invalid.
func getEnvFloat64(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the
// given key (prefixed with EnvPrefix) parsed as a time.Duration, or the
// default value if not set or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - ESTIMATOR_PROBLEM: Problem family (string: sd, mq, rsd, pe)
//   - ESTIMATOR_N, ESTIMATOR_K, ESTIMATOR_W, ESTIMATOR_M, ESTIMATOR_Q: problem
//     parameters (int)
//   - ESTIMATOR_COMPLEXITY_TYPE: "estimate" or "tilde_o"
//   - ESTIMATOR_BIT_COMPLEXITIES: Convert to bits (bool)
//   - ESTIMATOR_MEMORY_ACCESS: "const", "log", "sqrt", or "cbrt"
//   - ESTIMATOR_MEMORY_BOUND: Memory bound in log2 bits (float64)
//   - ESTIMATOR_PRECISION: Decimal digits (int)
//   - ESTIMATOR_TRUNCATE: Truncate rendered output (bool)
//   - ESTIMATOR_SHOW_ALL_PARAMETERS, ESTIMATOR_SHOW_TILDE_O,
//     ESTIMATOR_SHOW_QUANTUM: Rendering toggles (bool)
//   - ESTIMATOR_EXCLUDE: Comma-separated excluded algorithm names (string)
//   - ESTIMATOR_JSON: Render as JSON (bool)
//   - ESTIMATOR_QUIET: Quiet mode (bool)
//   - ESTIMATOR_NO_COLOR: Disable ANSI color output (bool)
//   - ESTIMATOR_TIMEOUT: Maximum estimate() duration, e.g. "90s" (duration)
//   - ESTIMATOR_METRICS: Wire and dump Prometheus instrumentation (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, excluded *string) {
	applyNumericOverrides(config, fs)
	applyStringOverrides(config, fs, excluded)
	applyBooleanOverrides(config, fs)
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") {
		config.N = getEnvInt("N", config.N)
	}
	if !isFlagSet(fs, "k") {
		config.K = getEnvInt("K", config.K)
	}
	if !isFlagSet(fs, "w") {
		config.W = getEnvInt("W", config.W)
	}
	if !isFlagSet(fs, "m") {
		config.M = getEnvInt("M", config.M)
	}
	if !isFlagSet(fs, "q") {
		config.Q = getEnvInt("Q", config.Q)
	}
	if !isFlagSet(fs, "memory-bound") {
		config.MemoryBoundLog2 = getEnvFloat64("MEMORY_BOUND", config.MemoryBoundLog2)
	}
	if !isFlagSet(fs, "precision") {
		config.Precision = getEnvInt("PRECISION", config.Precision)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet, excluded *string) {
	if !isFlagSet(fs, "problem") {
		config.Problem = getEnvString("PROBLEM", config.Problem)
	}
	if !isFlagSet(fs, "complexity-type") {
		config.ComplexityType = getEnvString("COMPLEXITY_TYPE", config.ComplexityType)
	}
	if !isFlagSet(fs, "memory-access") {
		config.MemoryAccess = getEnvString("MEMORY_ACCESS", config.MemoryAccess)
	}
	if !isFlagSet(fs, "exclude") {
		*excluded = getEnvString("EXCLUDE", *excluded)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "bit-complexities") {
		config.BitComplexities = getEnvBool("BIT_COMPLEXITIES", config.BitComplexities)
	}
	if !isFlagSet(fs, "truncate") {
		config.Truncate = getEnvBool("TRUNCATE", config.Truncate)
	}
	if !isFlagSet(fs, "show-all-parameters") {
		config.ShowAllParameters = getEnvBool("SHOW_ALL_PARAMETERS", config.ShowAllParameters)
	}
	if !isFlagSet(fs, "show-tilde-o") {
		config.ShowTildeOTime = getEnvBool("SHOW_TILDE_O", config.ShowTildeOTime)
	}
	if !isFlagSet(fs, "show-quantum") {
		config.ShowQuantumComplexity = getEnvBool("SHOW_QUANTUM", config.ShowQuantumComplexity)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q-quiet") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "metrics") {
		config.Metrics = getEnvBool("METRICS", config.Metrics)
	}
}

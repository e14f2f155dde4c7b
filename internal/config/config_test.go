package config

import (
	"io"
	"os"
	"testing"
)

func TestParseConfig(t *testing.T) {
	availableProblems := []string{"sd", "mq", "rsd", "pe"}

	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("estimate", []string{}, io.Discard, availableProblems)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Problem != "sd" {
			t.Errorf("Expected default Problem 'sd', got %s", cfg.Problem)
		}
		if cfg.ComplexityType != DefaultComplexityType {
			t.Errorf("Expected default ComplexityType %q, got %s", DefaultComplexityType, cfg.ComplexityType)
		}
		if !cfg.BitComplexities {
			t.Error("Expected BitComplexities true by default")
		}
		if cfg.Precision != DefaultPrecision {
			t.Errorf("Expected default Precision %d, got %d", DefaultPrecision, cfg.Precision)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-problem", "mq",
			"-n", "80",
			"-m", "80",
			"-q", "2",
			"-complexity-type", "tilde_o",
			"-memory-bound", "64",
			"-precision", "3",
			"-exclude", "Crossbred, Lokshtanov",
			"-json",
		}
		cfg, err := ParseConfig("estimate", args, io.Discard, availableProblems)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Problem != "mq" {
			t.Errorf("Expected Problem 'mq', got %s", cfg.Problem)
		}
		if cfg.N != 80 || cfg.M != 80 || cfg.Q != 2 {
			t.Errorf("Expected N=80,M=80,Q=2, got N=%d,M=%d,Q=%d", cfg.N, cfg.M, cfg.Q)
		}
		if cfg.ComplexityType != "tilde_o" {
			t.Errorf("Expected ComplexityType 'tilde_o', got %s", cfg.ComplexityType)
		}
		if cfg.MemoryBoundLog2 != 64 {
			t.Errorf("Expected MemoryBoundLog2 64, got %v", cfg.MemoryBoundLog2)
		}
		if cfg.Precision != 3 {
			t.Errorf("Expected Precision 3, got %d", cfg.Precision)
		}
		if len(cfg.ExcludedAlgorithms) != 2 || cfg.ExcludedAlgorithms[0] != "Crossbred" || cfg.ExcludedAlgorithms[1] != "Lokshtanov" {
			t.Errorf("Expected ExcludedAlgorithms [Crossbred Lokshtanov], got %v", cfg.ExcludedAlgorithms)
		}
		if !cfg.JSONOutput {
			t.Error("Expected JSONOutput true")
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		env := map[string]string{
			"ESTIMATOR_PROBLEM":         "rsd",
			"ESTIMATOR_N":               "64",
			"ESTIMATOR_COMPLEXITY_TYPE": "tilde_o",
			"ESTIMATOR_MEMORY_ACCESS":   "sqrt",
			"ESTIMATOR_MEMORY_BOUND":    "48",
			"ESTIMATOR_PRECISION":       "2",
			"ESTIMATOR_TRUNCATE":        "true",
			"ESTIMATOR_JSON":            "true",
			"ESTIMATOR_QUIET":          "true",
			"ESTIMATOR_EXCLUDE":        "Prange",
		}
		for k, v := range env {
			os.Setenv(k, v)
		}
		defer func() {
			for k := range env {
				os.Unsetenv(k)
			}
		}()

		cfg, err := ParseConfig("estimate", []string{}, io.Discard, availableProblems)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Problem != "rsd" {
			t.Errorf("Expected Problem 'rsd' from env, got %s", cfg.Problem)
		}
		if cfg.N != 64 {
			t.Errorf("Expected N 64 from env, got %d", cfg.N)
		}
		if cfg.ComplexityType != "tilde_o" {
			t.Errorf("Expected ComplexityType 'tilde_o' from env, got %s", cfg.ComplexityType)
		}
		if cfg.MemoryAccess != "sqrt" {
			t.Errorf("Expected MemoryAccess 'sqrt' from env, got %s", cfg.MemoryAccess)
		}
		if cfg.MemoryBoundLog2 != 48 {
			t.Errorf("Expected MemoryBoundLog2 48 from env, got %v", cfg.MemoryBoundLog2)
		}
		if cfg.Precision != 2 {
			t.Errorf("Expected Precision 2 from env, got %d", cfg.Precision)
		}
		if !cfg.Truncate {
			t.Error("Expected Truncate true from env")
		}
		if !cfg.JSONOutput {
			t.Error("Expected JSONOutput true from env")
		}
		if !cfg.Quiet {
			t.Error("Expected Quiet true from env")
		}
		if len(cfg.ExcludedAlgorithms) != 1 || cfg.ExcludedAlgorithms[0] != "Prange" {
			t.Errorf("Expected ExcludedAlgorithms [Prange] from env, got %v", cfg.ExcludedAlgorithms)
		}
	})

	t.Run("FlagPrecedenceOverEnv", func(t *testing.T) {
		os.Setenv("ESTIMATOR_N", "200")
		defer os.Unsetenv("ESTIMATOR_N")

		cfg, err := ParseConfig("estimate", []string{"-n", "300"}, io.Discard, availableProblems)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.N != 300 {
			t.Errorf("Expected N 300 from flag, got %d", cfg.N)
		}
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig("estimate", []string{"-unknown"}, io.Discard, availableProblems)
		if err == nil {
			t.Error("Expected error for unknown flag")
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig("estimate", []string{"-problem", "invalid"}, io.Discard, availableProblems)
		if err == nil {
			t.Error("Expected error for invalid problem family")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	availableProblems := []string{"sd", "mq"}

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Problem: "sd", ComplexityType: "estimate", MemoryAccess: "const", Precision: 1}
		if err := c.Validate(availableProblems); err != nil {
			t.Errorf("Unexpected validation error: %v", err)
		}
	})

	t.Run("InvalidPrecision", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Problem: "sd", ComplexityType: "estimate", MemoryAccess: "const", Precision: -1}
		if err := c.Validate(availableProblems); err == nil {
			t.Error("Expected error for negative precision")
		}
	})

	t.Run("InvalidProblem", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Problem: "unknown", ComplexityType: "estimate", MemoryAccess: "const"}
		if err := c.Validate(availableProblems); err == nil {
			t.Error("Expected error for unknown problem family")
		}
	})

	t.Run("InvalidComplexityType", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Problem: "sd", ComplexityType: "bogus", MemoryAccess: "const"}
		if err := c.Validate(availableProblems); err == nil {
			t.Error("Expected error for unknown complexity type")
		}
	})

	t.Run("InvalidMemoryAccess", func(t *testing.T) {
		t.Parallel()
		c := AppConfig{Problem: "sd", ComplexityType: "estimate", MemoryAccess: "bogus"}
		if err := c.Validate(availableProblems); err == nil {
			t.Error("Expected error for unknown memory access shape")
		}
	})
}

func TestEnvHelpers(t *testing.T) {
	prefix := EnvPrefix

	t.Run("getEnvString", func(t *testing.T) {
		key := "TEST_STRING"
		os.Setenv(prefix+key, "value")
		defer os.Unsetenv(prefix + key)
		if val := getEnvString(key, "default"); val != "value" {
			t.Errorf("Expected 'value', got '%s'", val)
		}
		if val := getEnvString("NONEXISTENT", "default"); val != "default" {
			t.Errorf("Expected 'default', got '%s'", val)
		}
	})

	t.Run("getEnvInt", func(t *testing.T) {
		key := "TEST_INT"
		os.Setenv(prefix+key, "-123")
		defer os.Unsetenv(prefix + key)
		if val := getEnvInt(key, 0); val != -123 {
			t.Errorf("Expected -123, got %d", val)
		}
	})

	t.Run("getEnvFloat64", func(t *testing.T) {
		key := "TEST_FLOAT"
		os.Setenv(prefix+key, "12.5")
		defer os.Unsetenv(prefix + key)
		if val := getEnvFloat64(key, 0); val != 12.5 {
			t.Errorf("Expected 12.5, got %v", val)
		}
		os.Setenv(prefix+"INVALID_FLOAT", "abc")
		defer os.Unsetenv(prefix + "INVALID_FLOAT")
		if val := getEnvFloat64("INVALID_FLOAT", 9); val != 9 {
			t.Errorf("Expected default 9 for invalid input, got %v", val)
		}
	})

	t.Run("getEnvBool", func(t *testing.T) {
		key := "TEST_BOOL"
		os.Setenv(prefix+key, "true")
		defer os.Unsetenv(prefix + key)
		if val := getEnvBool(key, false); !val {
			t.Error("Expected true")
		}

		os.Setenv(prefix+key, "0")
		if val := getEnvBool(key, true); val {
			t.Error("Expected false for '0'")
		}

		os.Setenv(prefix+key, "invalid")
		if val := getEnvBool(key, true); !val {
			t.Error("Expected default true for invalid input")
		}
	})
}

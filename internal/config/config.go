// Package config provides the configuration management for the estimator
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/hardness-estimator/internal/apperr"
)

const (
	// EnvPrefix is the prefix for all environment variables used by the
	// estimator. Environment variables provide an alternative to CLI flags
	// for configuration, following the 12-Factor App methodology.
	EnvPrefix = "ESTIMATOR_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultComplexityType is the complexity mode reported when none is
	// requested.
	DefaultComplexityType = "estimate"
	// DefaultMemoryAccess is the memory-access cost shape applied by
	// default: no penalty.
	DefaultMemoryAccess = "const"
	// DefaultPrecision is the number of decimal digits rendered by default.
	DefaultPrecision = 1
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates every setting that controls a
// single `estimate` invocation, from the problem family and its parameters
// to the cost-model and rendering flags.
type AppConfig struct {
	// Problem selects the problem family: "sd", "mq", "rsd", or "pe".
	Problem string
	// N, K, W, M, Q are the raw problem parameters; which ones apply
	// depends on Problem (SD/RSD: n,k,w; MQ: n,m,q; PE: n,k,q).
	N, K, W, M, Q int

	// ComplexityType is "estimate" or "tilde_o".
	ComplexityType string
	// BitComplexities toggles the basic-operations-to-bits unit conversion.
	BitComplexities bool
	// MemoryAccess is "const", "log", "sqrt", or "cbrt".
	MemoryAccess string
	// MemoryBoundLog2 caps memory bit-complexity; 0 or negative means
	// unbounded.
	MemoryBoundLog2 float64

	// Precision is the number of decimal digits in rendered output.
	Precision int
	// Truncate, if true, truncates rather than rounds rendered output.
	Truncate bool
	// ShowAllParameters, if true, renders every tuning parameter instead of
	// only the first three.
	ShowAllParameters bool
	// ShowTildeOTime, if true, adds the Tilde-O time column.
	ShowTildeOTime bool
	// ShowQuantumComplexity, if true, adds the quantum-speedup time column.
	ShowQuantumComplexity bool
	// ExcludedAlgorithms is the parsed form of -exclude: algorithm names to
	// skip.
	ExcludedAlgorithms []string

	// JSONOutput, if true, renders the report as JSON instead of a table.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes. Suppresses the
	// progress spinner and informational log lines.
	Quiet bool

	// NoColor disables ANSI color output, in addition to the NO_COLOR
	// environment variable (https://no-color.org/) that internal/ui.InitTheme
	// already honors on its own.
	NoColor bool
	// Timeout bounds how long Estimate() is allowed to run; 0 disables the
	// bound (SIGINT/SIGTERM still cancel). spec.md §5 reserves all
	// cancellation to the CLI boundary - the core search loop itself has no
	// suspension points.
	Timeout time.Duration
	// Metrics, if true, wires a Prometheus registry into every algorithm and
	// dumps it as text exposition format to stderr once Estimate() returns.
	Metrics bool
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen problem family and enum fields are supported.
//
// Parameters:
//   - availableProblems: A slice of strings listing the valid problem family
//     names (e.g., ["sd", "mq", "rsd", "pe"]).
//
// Returns:
//   - error: An error of type apperr.ConfigError if the configuration is
//     invalid, nil otherwise.
func (c AppConfig) Validate(availableProblems []string) error {
	if c.Precision < 0 {
		return apperr.NewConfigError("precision cannot be negative: %d", c.Precision)
	}
	found := false
	for _, p := range availableProblems {
		if p == c.Problem {
			found = true
			break
		}
	}
	if !found {
		return apperr.NewConfigError("unrecognized problem family: %q. Valid families are: %s", c.Problem, strings.Join(availableProblems, ", "))
	}
	switch c.ComplexityType {
	case "estimate", "tilde_o":
	default:
		return apperr.NewConfigError("unrecognized complexity type: %q. Valid values are: estimate, tilde_o", c.ComplexityType)
	}
	switch c.MemoryAccess {
	case "const", "log", "sqrt", "cbrt":
	default:
		return apperr.NewConfigError("unrecognized memory access shape: %q. Valid values are: const, log, sqrt, cbrt", c.MemoryAccess)
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableProblems: A slice of valid problem family names for
//     validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableProblems []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	problemHelp := fmt.Sprintf("Problem family: one of [%s].", strings.Join(availableProblems, ", "))

	var excluded string
	config := AppConfig{}
	fs.StringVar(&config.Problem, "problem", "sd", problemHelp)
	fs.IntVar(&config.N, "n", 100, "Problem parameter n.")
	fs.IntVar(&config.K, "k", 50, "Problem parameter k.")
	fs.IntVar(&config.W, "w", 10, "Problem parameter w (SD/RSD error weight).")
	fs.IntVar(&config.M, "m", 50, "Problem parameter m (MQ equation count).")
	fs.IntVar(&config.Q, "q", 2, "Problem parameter q (field order).")

	fs.StringVar(&config.ComplexityType, "complexity-type", DefaultComplexityType, "Complexity mode: 'estimate' or 'tilde_o'.")
	fs.BoolVar(&config.BitComplexities, "bit-complexities", true, "Convert basic-operation counts to bits.")
	fs.StringVar(&config.MemoryAccess, "memory-access", DefaultMemoryAccess, "Memory access cost shape: 'const', 'log', 'sqrt', or 'cbrt'.")
	fs.Float64Var(&config.MemoryBoundLog2, "memory-bound", 0, "Memory bound in log2 bits (0 disables the bound).")

	fs.IntVar(&config.Precision, "precision", DefaultPrecision, "Decimal digits in rendered output.")
	fs.BoolVar(&config.Truncate, "truncate", false, "Truncate instead of round rendered output.")
	fs.BoolVar(&config.ShowAllParameters, "show-all-parameters", false, "Render every tuning parameter, not just the first three.")
	fs.BoolVar(&config.ShowTildeOTime, "show-tilde-o", false, "Add the Tilde-O time column.")
	fs.BoolVar(&config.ShowQuantumComplexity, "show-quantum", false, "Add the quantum-speedup time column.")
	fs.StringVar(&excluded, "exclude", "", "Comma-separated list of algorithm names to skip.")

	fs.BoolVar(&config.JSONOutput, "json", false, "Render the report as JSON instead of a table.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - suppress the progress spinner and info logs.")
	fs.BoolVar(&config.Quiet, "q-quiet", false, "Alias for -quiet.")

	fs.BoolVar(&config.NoColor, "no-color", false, "Disable ANSI color output (also respects the NO_COLOR environment variable).")
	fs.DurationVar(&config.Timeout, "timeout", 5*time.Minute, "Maximum duration for estimate(); 0 disables the bound (SIGINT/SIGTERM still cancel).")
	fs.BoolVar(&config.Metrics, "metrics", false, "Wire Prometheus instrumentation and dump the registry as text exposition format to stderr.")

	setCustomUsage(fs, programName)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs, &excluded)

	if excluded != "" {
		for _, name := range strings.Split(excluded, ",") {
			if name = strings.TrimSpace(name); name != "" {
				config.ExcludedAlgorithms = append(config.ExcludedAlgorithms, name)
			}
		}
	}

	config.Problem = strings.ToLower(config.Problem)
	if err := config.Validate(availableProblems); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

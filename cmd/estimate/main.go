// Command estimate is the CLI front-end for the hardness-estimator
// framework: it parses an AppConfig, builds the requested problem family's
// Estimator, runs it, and renders the Report as a table or as JSON.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/app"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/config"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/estimator"
	"github.com/agbru/hardness-estimator/internal/families/mq"
	"github.com/agbru/hardness-estimator/internal/families/pe"
	"github.com/agbru/hardness-estimator/internal/families/rsd"
	"github.com/agbru/hardness-estimator/internal/families/sd"
	"github.com/agbru/hardness-estimator/internal/problem"
	"github.com/agbru/hardness-estimator/internal/render"
	"github.com/agbru/hardness-estimator/internal/telemetry"
	"github.com/agbru/hardness-estimator/internal/ui"
)

var availableProblems = []string{"sd", "mq", "rsd", "pe"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) (code int) {
	if app.HasVersionFlag(args) {
		app.PrintVersion(out)
		return apperr.ExitSuccess
	}

	cfg, err := config.ParseConfig("estimate", args, errOut, availableProblems)
	if err != nil {
		return apperr.ExitErrorConfig
	}

	ui.InitTheme(cfg.NoColor)

	// buildEstimator's family Validate calls raise apperr.ProgrammerError via
	// panic for malformed problem parameters (spec.md §7.1); a CLI front-end
	// turns that into a clean error message rather than a crash.
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(apperr.ProgrammerError); ok {
				fmt.Fprintln(errOut, ui.ColorRed()+pe.Error()+ui.ColorReset())
				code = apperr.ExitErrorGeneric
				return
			}
			panic(r)
		}
	}()

	var metrics *telemetry.Metrics
	if cfg.Metrics {
		metrics = telemetry.NewMetrics()
	}

	est, err := buildEstimator(cfg, metrics)
	if err != nil {
		fmt.Fprintln(errOut, ui.ColorRed()+err.Error()+ui.ColorReset())
		return apperr.ExitErrorConfig
	}

	ctx, lifecycle := setupLifecycle(cfg.Timeout)
	defer lifecycle.Cleanup()

	sp := startSpinner(cfg.Quiet)
	report, err := runEstimate(ctx, est)
	stopSpinner(sp)
	if err != nil {
		fmt.Fprintln(errOut, ui.ColorRed()+"estimate: "+err.Error()+ui.ColorReset())
		return apperr.ExitErrorGeneric
	}

	if cfg.JSONOutput {
		body, err := render.JSON(report)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return apperr.ExitErrorGeneric
		}
		fmt.Fprintln(out, string(body))
	} else {
		fmt.Fprintln(out, render.Table(report, render.TableOptions{
			Precision:             cfg.Precision,
			Truncate:              cfg.Truncate,
			ShowAllParameters:     cfg.ShowAllParameters,
			ShowTildeOTime:        cfg.ShowTildeOTime,
			ShowQuantumComplexity: cfg.ShowQuantumComplexity,
		}))
	}

	if metrics != nil {
		if err := telemetry.DumpText(metrics.Registry(), errOut); err != nil {
			fmt.Fprintln(errOut, err)
			return apperr.ExitErrorGeneric
		}
	}
	return apperr.ExitSuccess
}

// setupLifecycle builds the context est.EstimateConcurrent runs under: a
// signal-cancelable context, additionally bounded by timeout when positive.
// spec.md §5 keeps all cancellation at this CLI boundary - the core search
// loop itself has no suspension points and exposes no partial results, so a
// cancellation here simply discards whatever Estimate would have returned.
func setupLifecycle(timeout time.Duration) (context.Context, *app.CancelFuncs) {
	if timeout > 0 {
		return app.SetupLifecycle(context.Background(), timeout)
	}
	ctx, stopSignals := app.SetupSignals(context.Background())
	return ctx, &app.CancelFuncs{StopSignals: stopSignals}
}

// runEstimate races est.EstimateConcurrent against ctx: EstimateConcurrent
// has no suspension points of its own to check ctx against mid-search, so
// cancellation here means abandoning the result rather than interrupting an
// in-flight Optimise call - no partial results are ever returned, per
// spec.md §5.
func runEstimate(ctx context.Context, est *estimator.Estimator) (estimator.Report, error) {
	type outcome struct {
		report estimator.Report
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		report, err := est.EstimateConcurrent(ctx)
		done <- outcome{report, err}
	}()
	select {
	case <-ctx.Done():
		return estimator.Report{}, ctx.Err()
	case res := <-done:
		return res.report, res.err
	}
}

// buildEstimator constructs the problem.Base and algorithm set for the
// configured family, and wraps them in one estimator.Estimator carrying
// cfg's cost-model settings. When metrics is non-nil, it is wired into every
// constructed Algorithm via algorithm.WithMetrics, and into the Estimator
// itself via estimator.WithMetrics so callers can retrieve it after the run.
func buildEstimator(cfg config.AppConfig, metrics *telemetry.Metrics) (*estimator.Estimator, error) {
	econfig, err := toEstimatorConfig(cfg)
	if err != nil {
		return nil, err
	}

	var algOpts []algorithm.Option
	var estOpts []estimator.Option
	if metrics != nil {
		algOpts = append(algOpts, algorithm.WithMetrics(metrics))
		estOpts = append(estOpts, estimator.WithMetrics(metrics))
	}

	var base *problem.Base
	var entries []estimator.Entry

	switch cfg.Problem {
	case "sd":
		p := sd.Parameters{N: cfg.N, K: cfg.K, W: cfg.W}
		sd.Validate(p)
		base = sd.NewBase(p)
		entries = toEntries(sd.NewEstimatorAlgorithms(base, algOpts...))
	case "mq":
		p := mq.Parameters{N: cfg.N, M: cfg.M, Q: cfg.Q}
		mq.Validate(p)
		base = mq.NewBase(p)
		entries = toEntries(mq.NewEstimatorAlgorithms(base, algOpts...))
	case "rsd":
		if cfg.W <= 0 || cfg.N%cfg.W != 0 {
			return nil, apperr.NewConfigError("rsd: -w=%d must evenly divide -n=%d and be positive; -w doubles as the block count for this family", cfg.W, cfg.N)
		}
		p := rsd.Parameters{N: cfg.N, K: cfg.K, W: cfg.W, Blocks: cfg.W}
		rsd.Validate(p)
		base = rsd.NewBase(p)
		entries = toEntries(rsd.NewEstimatorAlgorithms(base, algOpts...))
	case "pe":
		p := pe.Parameters{N: cfg.N, K: cfg.K, Q: cfg.Q}
		pe.Validate(p)
		base = pe.NewBase(p)
		entries = toEntries(pe.NewEstimatorAlgorithms(base, algOpts...))
	default:
		return nil, apperr.NewConfigError("unrecognized problem family: %q", cfg.Problem)
	}

	est := estimator.New(cfg.Problem, base, entries, estOpts...)
	est.SetConfig(econfig)
	return est, nil
}

func toEntries(algs []*algorithm.Algorithm) []estimator.Entry {
	entries := make([]estimator.Entry, len(algs))
	for i, a := range algs {
		entries[i] = estimator.Entry{Algorithm: a}
	}
	return entries
}

func toEstimatorConfig(cfg config.AppConfig) (estimator.Config, error) {
	econfig := estimator.DefaultConfig()
	econfig.BitComplexities = cfg.BitComplexities
	econfig.Precision = cfg.Precision
	econfig.Truncate = cfg.Truncate
	econfig.ShowAllParameters = cfg.ShowAllParameters
	econfig.ShowTildeOTime = cfg.ShowTildeOTime
	econfig.ShowQuantumComplexity = cfg.ShowQuantumComplexity
	econfig.ExcludedAlgorithms = cfg.ExcludedAlgorithms

	switch cfg.ComplexityType {
	case "estimate":
		econfig.ComplexityType = costmodel.Estimate
	case "tilde_o":
		econfig.ComplexityType = costmodel.TildeO
	default:
		return estimator.Config{}, apperr.NewConfigError("unrecognized complexity type: %q", cfg.ComplexityType)
	}

	switch cfg.MemoryAccess {
	case "const":
		econfig.MemoryAccess = costmodel.ConstAccess
	case "log":
		econfig.MemoryAccess = costmodel.MemoryAccess{Kind: costmodel.Log}
	case "sqrt":
		econfig.MemoryAccess = costmodel.MemoryAccess{Kind: costmodel.Sqrt}
	case "cbrt":
		econfig.MemoryAccess = costmodel.MemoryAccess{Kind: costmodel.Cbrt}
	default:
		return estimator.Config{}, apperr.NewConfigError("unrecognized memory access shape: %q", cfg.MemoryAccess)
	}

	if cfg.MemoryBoundLog2 > 0 {
		econfig.MemoryBoundLog2 = cfg.MemoryBoundLog2
	}
	return econfig, nil
}

func startSpinner(quiet bool) *spinner.Spinner {
	if quiet {
		return nil
	}
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " estimating..."
	sp.Start()
	return sp
}

func stopSpinner(sp *spinner.Spinner) {
	if sp != nil {
		sp.Stop()
	}
}

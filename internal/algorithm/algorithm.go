// Package algorithm hosts the per-algorithm cost function, caches its
// optimum, exposes the parameter schema and "optimal parameter" accessors,
// and applies the cost-model transforms described in spec.md §4.4. It is
// the only place where the declarative layer (parameter ranges, config
// flags) and the pure cost function meet.
package algorithm

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/logging"
	"github.com/agbru/hardness-estimator/internal/optimize"
	"github.com/agbru/hardness-estimator/internal/paramrange"
	"github.com/agbru/hardness-estimator/internal/problem"
	"github.com/agbru/hardness-estimator/internal/telemetry"
)

// State is the per-algorithm lifecycle state machine from spec.md §4.4.
type State int

const (
	Unevaluated State = iota
	Optimising
	Optimal
	NoFeasibleSample
)

func (s State) String() string {
	switch s {
	case Unevaluated:
		return "unevaluated"
	case Optimising:
		return "optimising"
	case Optimal:
		return "optimal"
	case NoFeasibleSample:
		return "no_feasible_sample"
	default:
		return "unknown"
	}
}

// CostFunc is the pure, per-algorithm cost function plug-in: the only point
// where a concrete attack's cryptanalytic formula lives. It must be pure,
// use log2 arithmetic throughout, and never iterate over tuning parameters
// itself — that's the optimisation core's job.
type CostFunc func(p *problem.Base, assignment paramrange.Assignment) costmodel.CostSample

// OptimalFunc analytically computes an independent tuning parameter's value
// from the problem parameters and the parameters already fixed ahead of it.
type OptimalFunc func(p *problem.Base, fixed paramrange.Assignment) int

// Algorithm wraps one attack's cost function together with its declared
// parameter schema, the problem it is estimating against, and the cached
// optimum of the last search.
type Algorithm struct {
	name    string
	problem *problem.Base
	schema  *paramrange.Schema

	costFn    CostFunc
	tildeOFn  CostFunc // optional
	quantumFn CostFunc // optional

	optimalFns map[string]OptimalFunc
	invalid    paramrange.InvalidPredicate
	enumerator paramrange.Enumerator

	complexityType  costmodel.ComplexityType
	bitComplexities bool
	memoryAccess    costmodel.MemoryAccess

	logger  logging.Logger
	metrics *telemetry.Metrics

	mu               sync.Mutex
	state            State
	cachedAssignment paramrange.Assignment
	cachedSample     costmodel.CostSample
	verboseAux       map[string]any
}

// Option configures an Algorithm at construction time.
type Option func(*Algorithm)

// WithTildeO registers the algorithm's Tilde-O cost function.
func WithTildeO(fn CostFunc) Option { return func(a *Algorithm) { a.tildeOFn = fn } }

// WithQuantum registers the algorithm's quantum-speedup cost function.
func WithQuantum(fn CostFunc) Option { return func(a *Algorithm) { a.quantumFn = fn } }

// WithOptimalFunc registers the analytic solver for one independent
// parameter.
func WithOptimalFunc(name string, fn OptimalFunc) Option {
	return func(a *Algorithm) { a.optimalFns[name] = fn }
}

// WithInvalidPredicate registers the cheap rejection predicate used to skip
// tuning tuples before the cost function runs.
func WithInvalidPredicate(pred paramrange.InvalidPredicate) Option {
	return func(a *Algorithm) { a.invalid = pred }
}

// WithEnumerator overrides the default row-major Cartesian enumerator.
func WithEnumerator(e paramrange.Enumerator) Option {
	return func(a *Algorithm) { a.enumerator = e }
}

// WithLogger wires a logger; the default is a no-op logger so the hot path
// stays I/O-free unless a caller opts in.
func WithLogger(l logging.Logger) Option { return func(a *Algorithm) { a.logger = l } }

// WithMetrics wires a Metrics instance so every search records evaluated and
// rejected sample counts and Optimise duration. The default is nil, meaning
// no instrumentation overhead unless a caller opts in.
func WithMetrics(m *telemetry.Metrics) Option { return func(a *Algorithm) { a.metrics = m } }

// New constructs an Algorithm for the given problem and schema. costFn must
// not be nil — that is a programmer error, per spec.md §7.1.
func New(name string, p *problem.Base, schema *paramrange.Schema, costFn CostFunc, opts ...Option) *Algorithm {
	if costFn == nil {
		apperr.Panic("algorithm %q: nil cost function", name)
	}
	a := &Algorithm{
		name:            name,
		problem:         p,
		schema:          schema,
		costFn:          costFn,
		optimalFns:      make(map[string]OptimalFunc),
		bitComplexities: true,
		memoryAccess:    costmodel.ConstAccess,
		logger:          logging.Nop(),
		state:           Unevaluated,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the algorithm's display name.
func (a *Algorithm) Name() string { return a.name }

// Schema returns the algorithm's tuning-parameter schema.
func (a *Algorithm) Schema() *paramrange.Schema { return a.schema }

// State returns the current lifecycle state.
func (a *Algorithm) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SupportsTildeO reports whether this algorithm exposes a Tilde-O variant.
func (a *Algorithm) SupportsTildeO() bool { return a.tildeOFn != nil }

// SupportsQuantum reports whether this algorithm exposes a quantum variant.
func (a *Algorithm) SupportsQuantum() bool { return a.quantumFn != nil }

// SetComplexityType switches between ESTIMATE and TILDE_O and invalidates
// the cache, per spec.md Invariant 5.
func (a *Algorithm) SetComplexityType(ct costmodel.ComplexityType) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.complexityType = ct
	a.invalidateLocked()
}

// SetBitComplexities toggles unit conversion and invalidates the cache.
func (a *Algorithm) SetBitComplexities(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bitComplexities = enabled
	a.invalidateLocked()
}

// SetMemoryAccess sets the memory-access cost shape and invalidates the
// cache.
func (a *Algorithm) SetMemoryAccess(ma costmodel.MemoryAccess) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.memoryAccess = ma
	a.invalidateLocked()
}

// SetParameters fixes multiple tuning parameters by name and clears the
// cache. An unknown name is a programmer error (spec.md §7.1).
func (a *Algorithm) SetParameters(values map[string]int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, v := range values {
		_ = a.schema.SetValue(name, v)
	}
	a.invalidateLocked()
}

// SetParameterRanges narrows one tuning parameter's box and clears the
// cache. It returns a ConfigError if the resulting interval is empty.
func (a *Algorithm) SetParameterRanges(name string, min, max int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.schema.SetRange(name, min, max); err != nil {
		return err
	}
	a.invalidateLocked()
	return nil
}

// Reset clears the cache and every user-set fix/narrowing, restoring the
// originally declared ranges.
func (a *Algorithm) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.schema.Reset()
	a.invalidateLocked()
}

func (a *Algorithm) invalidateLocked() {
	a.state = Unevaluated
	a.cachedAssignment = nil
	a.cachedSample = costmodel.CostSample{}
	a.verboseAux = nil
	a.logger.Debug("algorithm cache invalidated", logging.String("algorithm", a.name))
}

// transform applies the cost-model transforms from spec.md §4.4: unit
// conversion, then the memory-access penalty computed from the (possibly
// converted) memory bit-complexity.
func (a *Algorithm) transform(raw costmodel.CostSample) costmodel.CostSample {
	timeLog2, memLog2 := raw.TimeLog2, raw.MemoryLog2
	if a.bitComplexities {
		timeLog2 = a.problem.ToBitcomplexityTime(timeLog2)
		memLog2 = a.problem.ToBitcomplexityMemory(memLog2)
	}
	if !math.IsInf(timeLog2, 1) {
		timeLog2 += a.memoryAccess.Penalty(memLog2)
	}
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memLog2, Aux: raw.Aux}
}

func (a *Algorithm) activeCostFunc() CostFunc {
	if a.complexityType == costmodel.TildeO {
		if a.tildeOFn == nil {
			return func(*problem.Base, paramrange.Assignment) costmodel.CostSample {
				return costmodel.Infeasible
			}
		}
		return a.tildeOFn
	}
	return a.costFn
}

func (a *Algorithm) searchInput(costFn CostFunc, tuplesSeen *int) optimize.Input {
	optimalFns := make(map[string]optimize.OptimalFn, len(a.optimalFns))
	for name, fn := range a.optimalFns {
		fn := fn
		optimalFns[name] = func(fixed paramrange.Assignment) int { return fn(a.problem, fixed) }
	}
	input := optimize.Input{
		Schema: a.schema,
		CostFn: func(assignment paramrange.Assignment) costmodel.CostSample {
			return a.transform(costFn(a.problem, assignment))
		},
		Optimal:          optimalFns,
		InvalidPredicate: a.invalid,
		Enumerator:       a.enumerator,
		MemoryBoundLog2:  a.problem.MemoryBoundLog2,
	}
	input.OnSampleEvaluated = func() {
		if tuplesSeen != nil {
			*tuplesSeen++
		}
		if a.metrics != nil {
			a.metrics.ObserveSampleEvaluated(a.name)
		}
	}
	input.OnSampleRejected = func(reason string) {
		if tuplesSeen != nil {
			*tuplesSeen++
		}
		if a.metrics != nil {
			a.metrics.ObserveSampleRejected(a.name, reason)
		}
	}
	return input
}

// optimumLocked runs the search on first call (or after any invalidation)
// and caches the result. Must be called with a.mu held.
func (a *Algorithm) optimumLocked() (paramrange.Assignment, costmodel.CostSample) {
	if a.state == Optimal || a.state == NoFeasibleSample {
		return a.cachedAssignment, a.cachedSample
	}
	a.state = Optimising
	_, span := telemetry.StartOptimiseSpan(context.Background(), a.name)
	start := time.Now()
	tuplesSeen := 0
	outcome := optimize.Search(a.searchInput(a.activeCostFunc(), &tuplesSeen))
	if a.metrics != nil {
		a.metrics.ObserveOptimiseDuration(a.name, time.Since(start))
	}
	telemetry.RecordTuplesEvaluated(span, tuplesSeen)
	span.End()
	if !outcome.Feasible {
		a.state = NoFeasibleSample
		a.cachedAssignment = paramrange.Assignment{}
		a.cachedSample = costmodel.Infeasible
		return a.cachedAssignment, a.cachedSample
	}
	a.state = Optimal
	a.cachedAssignment = outcome.Assignment
	a.cachedSample = outcome.Sample
	a.verboseAux = outcome.Sample.Aux
	return a.cachedAssignment, a.cachedSample
}

// TimeComplexity returns the time bit-complexity. With no argument, it
// returns the cached minimum (computing it on first call). With an explicit
// (possibly partial) assignment, it returns the cost for exactly that
// assignment without touching the cache.
func (a *Algorithm) TimeComplexity(explicit ...paramrange.Assignment) float64 {
	if len(explicit) > 0 && len(explicit[0]) > 0 {
		return a.evaluateExplicit(explicit[0]).TimeLog2
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, sample := a.optimumLocked()
	return sample.TimeLog2
}

// MemoryComplexity is MemoryComplexity's counterpart for the memory
// bit-complexity.
func (a *Algorithm) MemoryComplexity(explicit ...paramrange.Assignment) float64 {
	if len(explicit) > 0 && len(explicit[0]) > 0 {
		return a.evaluateExplicit(explicit[0]).MemoryLog2
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, sample := a.optimumLocked()
	return sample.MemoryLog2
}

func (a *Algorithm) evaluateExplicit(assignment paramrange.Assignment) costmodel.CostSample {
	a.mu.Lock()
	costFn := a.activeCostFunc()
	input := a.searchInput(costFn, nil)
	a.mu.Unlock()
	return optimize.EvaluateExplicit(input, assignment)
}

// QuantumTimeComplexity returns the time bit-complexity under the
// Grover-like quantum speed-up, or +Inf if this algorithm exposes no
// quantum variant. It is not cached on the main state machine: it is an
// optional reporting column, recomputed on each call.
func (a *Algorithm) QuantumTimeComplexity() float64 {
	if a.quantumFn == nil {
		return math.Inf(1)
	}
	a.mu.Lock()
	input := a.searchInput(a.quantumFn, nil)
	a.mu.Unlock()
	outcome := optimize.Search(input)
	if !outcome.Feasible {
		return math.Inf(1)
	}
	return outcome.Sample.TimeLog2
}

// OptimalParameters returns the minimising assignment, computing it if not
// already cached.
func (a *Algorithm) OptimalParameters() paramrange.Assignment {
	a.mu.Lock()
	defer a.mu.Unlock()
	assignment, _ := a.optimumLocked()
	return cloneAssignment(assignment)
}

// GetOptimalParametersDict returns the currently cached assignment without
// triggering a search; it is empty if the algorithm is Unevaluated.
func (a *Algorithm) GetOptimalParametersDict() paramrange.Assignment {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Optimal {
		return paramrange.Assignment{}
	}
	return cloneAssignment(a.cachedAssignment)
}

// Verbose returns a snapshot of the auxiliary map attached to the best
// sample found by the last search, or nil if none is cached.
func (a *Algorithm) Verbose() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.verboseAux == nil {
		return nil
	}
	out := make(map[string]any, len(a.verboseAux))
	for k, v := range a.verboseAux {
		out[k] = v
	}
	return out
}

func cloneAssignment(a paramrange.Assignment) paramrange.Assignment {
	out := make(paramrange.Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

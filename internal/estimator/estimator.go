// Package estimator implements the façade spec.md §4.6 describes: a named
// bundle of Algorithms sharing one problem instance and one Config, with
// config mutation propagating to every owned Algorithm and applicability
// filtering combining each algorithm's own relevance test with a caller's
// exclusion list.
package estimator

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/logging"
	"github.com/agbru/hardness-estimator/internal/problem"
	"github.com/agbru/hardness-estimator/internal/telemetry"
)

// Config bundles the knobs spec.md's Invariant 4-5 requires to propagate to
// every owned Algorithm the moment they change, plus the purely
// presentation-level fields the CLI reads but the cache never depends on.
type Config struct {
	ComplexityType        costmodel.ComplexityType
	BitComplexities       bool
	MemoryAccess          costmodel.MemoryAccess
	MemoryBoundLog2       float64
	Precision             int
	Truncate              bool
	ShowAllParameters     bool
	ShowTildeOTime        bool
	ShowQuantumComplexity bool
	ExcludedAlgorithms    []string
}

// DefaultConfig returns the Config an Estimator starts with: concrete
// estimates, bit-complexity conversion on, no memory bound, constant memory
// access, six significant digits, rounding rather than truncating.
func DefaultConfig() Config {
	return Config{
		ComplexityType:  costmodel.Estimate,
		BitComplexities: true,
		MemoryAccess:    costmodel.ConstAccess,
		MemoryBoundLog2: math.Inf(1),
		Precision:       6,
	}
}

// Entry registers one Algorithm together with the applicability test that
// decides whether it takes part in a given Estimate() call. A nil AppliesTo
// means the algorithm always applies.
type Entry struct {
	Algorithm *algorithm.Algorithm
	AppliesTo func() bool
}

// Estimator bundles a problem instance, the algorithms that attack it, and
// the shared Config every owned Algorithm's cost-model transforms read from.
type Estimator struct {
	name    string
	problem *problem.Base
	entries []Entry
	byName  map[string]Entry
	config  Config
	logger  logging.Logger
	metrics *telemetry.Metrics
}

// Option configures an Estimator at construction time.
type Option func(*Estimator)

// WithLogger wires a logger; the default discards everything.
func WithLogger(l logging.Logger) Option { return func(e *Estimator) { e.logger = l } }

// WithConfig seeds the Estimator's Config instead of DefaultConfig().
func WithConfig(c Config) Option { return func(e *Estimator) { e.config = c } }

// WithMetrics records the Metrics instance the owned Algorithms were built
// with, so a caller can retrieve it later (e.g. to dump the Prometheus
// registry as text) without threading it through separately. It does not
// itself wire metrics into any Algorithm — that happens at algorithm.New
// time via algorithm.WithMetrics, since Algorithm has no metrics setter
// once constructed.
func WithMetrics(m *telemetry.Metrics) Option { return func(e *Estimator) { e.metrics = m } }

// New constructs an Estimator over the given problem and algorithm entries,
// applying the Config to every owned Algorithm immediately.
func New(name string, p *problem.Base, entries []Entry, opts ...Option) *Estimator {
	e := &Estimator{
		name:    name,
		problem: p,
		entries: entries,
		byName:  make(map[string]Entry, len(entries)),
		config:  DefaultConfig(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, entry := range entries {
		e.byName[entry.Algorithm.Name()] = entry
	}
	e.applyConfigToAll()
	return e
}

// Name returns the estimator's display name (typically the problem family).
func (e *Estimator) Name() string { return e.name }

// Problem returns the problem instance every owned Algorithm shares.
func (e *Estimator) Problem() *problem.Base { return e.problem }

// Metrics returns the Metrics instance passed via WithMetrics, or nil if
// none was wired.
func (e *Estimator) Metrics() *telemetry.Metrics { return e.metrics }

func (e *Estimator) isExcluded(name string) bool {
	for _, excluded := range e.config.ExcludedAlgorithms {
		if excluded == name {
			return true
		}
	}
	return false
}

// AlgorithmNames returns the names of every applicable, non-excluded
// algorithm, in registration order.
func (e *Estimator) AlgorithmNames() []string {
	var out []string
	for _, entry := range e.entries {
		if e.isExcluded(entry.Algorithm.Name()) {
			continue
		}
		if entry.AppliesTo != nil && !entry.AppliesTo() {
			continue
		}
		out = append(out, entry.Algorithm.Name())
	}
	return out
}

// Algorithms returns the applicable, non-excluded Algorithm instances, in
// registration order.
func (e *Estimator) Algorithms() []*algorithm.Algorithm {
	var out []*algorithm.Algorithm
	for _, entry := range e.entries {
		if e.isExcluded(entry.Algorithm.Name()) {
			continue
		}
		if entry.AppliesTo != nil && !entry.AppliesTo() {
			continue
		}
		out = append(out, entry.Algorithm)
	}
	return out
}

// Algorithm returns the named algorithm regardless of applicability or
// exclusion, or false if no such name was ever registered.
func (e *Estimator) Algorithm(name string) (*algorithm.Algorithm, bool) {
	entry, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return entry.Algorithm, true
}

func (e *Estimator) applyConfigToAll() {
	for _, entry := range e.entries {
		a := entry.Algorithm
		a.SetComplexityType(e.config.ComplexityType)
		a.SetBitComplexities(e.config.BitComplexities)
		a.SetMemoryAccess(e.config.MemoryAccess)
	}
	e.problem.MemoryBoundLog2 = e.config.MemoryBoundLog2
	e.logger.Info("estimator config applied, algorithm caches invalidated", logging.String("estimator", e.name))
}

// SetConfig replaces the whole Config, propagating every field to every
// owned Algorithm and invalidating their caches, per spec.md Invariant 4-5.
func (e *Estimator) SetConfig(c Config) {
	e.config = c
	e.applyConfigToAll()
}

// Config returns a copy of the current Config.
func (e *Estimator) Config() Config { return e.config }

// SetComplexityType propagates a new ComplexityType to every owned Algorithm.
func (e *Estimator) SetComplexityType(ct costmodel.ComplexityType) {
	e.config.ComplexityType = ct
	e.applyConfigToAll()
}

// SetBitComplexities propagates a new BitComplexities toggle.
func (e *Estimator) SetBitComplexities(enabled bool) {
	e.config.BitComplexities = enabled
	e.applyConfigToAll()
}

// SetMemoryAccess propagates a new memory-access cost shape.
func (e *Estimator) SetMemoryAccess(ma costmodel.MemoryAccess) {
	e.config.MemoryAccess = ma
	e.applyConfigToAll()
}

// SetMemoryBound propagates a new memory bound (log2 bits) to the shared
// problem instance every owned Algorithm's search reads from.
func (e *Estimator) SetMemoryBound(boundLog2 float64) {
	e.config.MemoryBoundLog2 = boundLog2
	e.applyConfigToAll()
}

// SetExcludedAlgorithms narrows which algorithms Estimate() considers. This
// is pure filtering: it does not touch any Algorithm's cache.
func (e *Estimator) SetExcludedAlgorithms(names []string) {
	e.config.ExcludedAlgorithms = append([]string(nil), names...)
}

// Reset clears every owned Algorithm's cache and user-set parameter
// fixes/narrowings, restoring their originally declared ranges.
func (e *Estimator) Reset() {
	for _, entry := range e.entries {
		entry.Algorithm.Reset()
	}
}

// Estimate runs every applicable, non-excluded algorithm sequentially and
// collects one Row per algorithm into a Report, per spec.md §4.6.
func (e *Estimator) Estimate() Report {
	var rows []Row
	for _, entry := range e.entries {
		name := entry.Algorithm.Name()
		if e.isExcluded(name) {
			continue
		}
		if entry.AppliesTo != nil && !entry.AppliesTo() {
			continue
		}
		rows = append(rows, e.rowFor(entry.Algorithm))
	}
	return Report{ProblemName: e.name, Rows: rows}
}

// EstimateConcurrent is the opt-in concurrent counterpart to Estimate: each
// applicable algorithm's optimisation runs on its own goroutine via
// errgroup. It must not be called while a config mutation is in flight on
// this Estimator — spec.md §5 only allows this concurrency because each
// Algorithm's search is independent once the Config has already propagated.
func (e *Estimator) EstimateConcurrent(ctx context.Context) (Report, error) {
	var applicable []*algorithm.Algorithm
	for _, entry := range e.entries {
		name := entry.Algorithm.Name()
		if e.isExcluded(name) {
			continue
		}
		if entry.AppliesTo != nil && !entry.AppliesTo() {
			continue
		}
		applicable = append(applicable, entry.Algorithm)
	}

	rows := make([]Row, len(applicable))
	g, _ := errgroup.WithContext(ctx)
	for i, a := range applicable {
		i, a := i, a
		g.Go(func() error {
			rows[i] = e.rowFor(a)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return Report{ProblemName: e.name, Rows: rows}, nil
}

func (e *Estimator) rowFor(a *algorithm.Algorithm) Row {
	row := Row{
		AlgorithmName:     a.Name(),
		TimeLog2:          a.TimeComplexity(),
		MemoryLog2:        a.MemoryComplexity(),
		OptimalParameters: a.OptimalParameters(),
	}
	if e.config.ShowTildeOTime && a.SupportsTildeO() {
		a.SetComplexityType(costmodel.TildeO)
		row.TildeOTimeLog2 = ptr(a.TimeComplexity())
		a.SetComplexityType(e.config.ComplexityType)
	}
	if e.config.ShowQuantumComplexity && a.SupportsQuantum() {
		row.QuantumTimeLog2 = ptr(a.QuantumTimeComplexity())
	}
	return row
}

func ptr(v float64) *float64 { return &v }

// FastestAlgorithm returns the name of the applicable algorithm with the
// lowest time bit-complexity, or false if none is feasible.
func (e *Estimator) FastestAlgorithm() (string, bool) {
	report := e.Estimate()
	sorted := append([]Row(nil), report.Rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TimeLog2 < sorted[j].TimeLog2 })
	for _, row := range sorted {
		if !math.IsInf(row.TimeLog2, 1) {
			return row.AlgorithmName, true
		}
	}
	return "", false
}

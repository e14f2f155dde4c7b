// Package pe implements Permuted/Linear/Permutation code Equivalence: given
// a pair of [n,k] codes over F_q, decide (or lower-bound the cost of
// finding) a monomial transform mapping one to the other. Its one attack,
// LeonBirthday, is the concrete realisation of spec.md §9's "LE/PE/PK call
// SD internally" Open Question: it owns a private internal/estimator
// sub-estimator wrapping internal/families/sd's Prange, and documents the
// chosen resolution — the outer Estimator's ExcludedAlgorithms never
// reaches that inner sub-estimator, since each family owns its composition
// privately (see DESIGN.md).
package pe

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/estimator"
	"github.com/agbru/hardness-estimator/internal/families/sd"
	"github.com/agbru/hardness-estimator/internal/numerics"
	"github.com/agbru/hardness-estimator/internal/paramrange"
	"github.com/agbru/hardness-estimator/internal/problem"
)

// Parameters is one code-equivalence instance: a pair of [n,k] codes over
// the field of order q.
type Parameters struct {
	N, K, Q int
}

// Name implements problem.Parameters.
func (Parameters) Name() string { return "PE" }

// FieldOrder implements problem.Parameters.
func (p Parameters) FieldOrder() int { return p.Q }

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// NewBase constructs the shared problem.Base for a code-equivalence
// instance, scaling by log2(q) (a monomial entry is a field element, not a
// bit) and defaulting the expected-solution count to a rough estimate of
// the automorphism group's size, log2(k!) - the number of fixed-weight
// support permutations a random equivalence could realise.
func NewBase(p Parameters) *problem.Base {
	nsolutions := numerics.Log2Factorial(float64(p.K))
	return problem.New(p, problem.FieldScaled(p.Q), nsolutions)
}

func params(p *problem.Base) Parameters { return p.Params.(Parameters) }

// innerMinimumWeight picks the minimum-weight-codeword search target
// LeonBirthday's inner SD sub-search looks for: a Gilbert-Varshamov-style
// estimate of the code's minimum distance, clamped to a small positive
// range so the inner search stays tractable.
func innerMinimumWeight(prm Parameters) int {
	w := prm.N - prm.K
	if ceiling := prm.N / 4; w > ceiling {
		w = ceiling
	}
	if w < 1 {
		w = 1
	}
	return w
}

// NewLeonBirthday constructs the support-splitting birthday attack: a
// private inner internal/estimator.Estimator wrapping one
// internal/families/sd.Prange instance over the derived SD sub-problem
// {n, k, w}, combined with an outer birthday trial-count tuning parameter.
func NewLeonBirthday(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	prm := params(p)
	w := innerMinimumWeight(prm)
	innerBase := sd.NewBase(sd.Parameters{N: prm.N, K: prm.K, W: w})
	innerEstimator := estimator.New("sd (LeonBirthday inner)", innerBase, []estimator.Entry{
		{Algorithm: sd.NewPrange(innerBase)},
	})

	schema := paramrange.NewSchema()
	maxTrials := prm.N
	if maxTrials < 1 {
		maxTrials = 1
	}
	schema.Declare("trials", 1, maxTrials, paramrange.Joint)

	costFn := func(_ *problem.Base, a paramrange.Assignment) costmodel.CostSample {
		report := innerEstimator.Estimate()
		if len(report.Rows) == 0 {
			return costmodel.Infeasible
		}
		inner := report.Rows[0]
		trials := float64(a["trials"])
		timeLog2 := inner.TimeLog2 - log2(trials)
		memoryLog2 := numerics.Log2Add(inner.MemoryLog2, log2(trials))
		return costmodel.CostSample{
			TimeLog2:   timeLog2,
			MemoryLog2: memoryLog2,
			Aux:        map[string]any{"inner_sd_time_log2": inner.TimeLog2, "inner_sd_memory_log2": inner.MemoryLog2},
		}
	}

	return algorithm.New("LeonBirthday", p, schema, costFn, opts...)
}

// NewEstimatorAlgorithms returns the standard {LeonBirthday} plug-in set for
// one problem.Base. opts (e.g. algorithm.WithMetrics) is forwarded to the
// outer LeonBirthday Algorithm only — the private inner sd.Prange
// sub-estimator stays outside the outer Estimator's instrumentation, the
// same composition boundary ExcludedAlgorithms never crosses (see DESIGN.md).
func NewEstimatorAlgorithms(p *problem.Base, opts ...algorithm.Option) []*algorithm.Algorithm {
	return []*algorithm.Algorithm{NewLeonBirthday(p, opts...)}
}

// Validate checks the programmer-error-class invariants: non-positive n/k,
// or k exceeding n.
func Validate(p Parameters) {
	if p.N <= 0 || p.K <= 0 {
		apperr.Panic("pe: n=%d,k=%d must be positive", p.N, p.K)
	}
	if p.K > p.N {
		apperr.Panic("pe: k=%d must not exceed n=%d", p.K, p.N)
	}
	if p.Q < 2 {
		apperr.Panic("pe: q=%d must be at least 2", p.Q)
	}
}

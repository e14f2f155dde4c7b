// Package mq implements the Multivariate Quadratic problem family: the
// {n,m,q} parameters (n variables, m equations, field order q) and four
// attacks — ExhaustiveSearch, Lokshtanov, BooleanSolveFXL, and Crossbred —
// spanning the parameter-free baseline through the joint-parameter hybrid
// and degree-bounded Gröbner-style attacks. As with internal/families/sd,
// the cost shapes are best-effort reconstructions, not verified formulas.
package mq

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/numerics"
	"github.com/agbru/hardness-estimator/internal/paramrange"
	"github.com/agbru/hardness-estimator/internal/problem"
)

// Parameters is one multivariate-quadratic instance: n variables, m
// equations, over the field of order q.
type Parameters struct {
	N, M, Q int
}

// Name implements problem.Parameters.
func (Parameters) Name() string { return "MQ" }

// FieldOrder implements problem.Parameters.
func (p Parameters) FieldOrder() int { return p.Q }

// NewBase constructs the shared problem.Base for an MQ instance, scaling
// both time and memory by log2(q) (the basic element is one field
// operation, not one bit) and defaulting the expected-solution count to
// q^(n-m).
func NewBase(p Parameters) *problem.Base {
	nsolutions := float64(p.N-p.M) * log2(float64(p.Q))
	return problem.New(p, problem.FieldScaled(p.Q), nsolutions)
}

func params(p *problem.Base) Parameters { return p.Params.(Parameters) }

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// NewExhaustiveSearch constructs the parameter-free baseline: evaluate all
// q^n points, amortising the per-point evaluation cost via Gray-code
// hopping (each step touches one monomial, not the whole system).
func NewExhaustiveSearch(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	schema := paramrange.NewSchema()
	return algorithm.New("ExhaustiveSearch", p, schema, exhaustiveCost, opts...)
}

func exhaustiveCost(p *problem.Base, _ paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, m, q := float64(prm.N), float64(prm.M), float64(prm.Q)
	timeLog2 := n*log2(q) + log2(m) + 2*log2(n)
	memoryLog2 := log2(n) + log2(m)
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewLokshtanov constructs the Lokshtanov-style algebraic algorithm, with a
// single joint parameter delta (the number of variables handled by the
// sub-exponential subroutine rather than by brute force); delta trades a
// linear exponent reduction against a quadratic bookkeeping penalty, giving
// the search an interior optimum instead of a degenerate one.
func NewLokshtanov(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	prm := params(p)
	schema := paramrange.NewSchema()
	max := prm.N - 1
	if max < 1 {
		max = 1
	}
	schema.Declare("delta", 1, max, paramrange.Joint)
	return algorithm.New("Lokshtanov", p, schema, lokshtanovCost, opts...)
}

func lokshtanovCost(p *problem.Base, a paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, m, q := float64(prm.N), float64(prm.M), float64(prm.Q)
	delta := float64(a["delta"])
	if delta < 1 || delta >= n {
		return costmodel.Infeasible
	}
	remaining := n - delta
	timeLog2 := remaining*log2(q) + (delta*delta)/(2*n) + log2(m) + log2(n)
	memoryLog2 := log2(n) + log2(m) + delta/n
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewBooleanSolveFXL constructs the hybrid FXL-style attack, with a single
// joint parameter k: guess k variables exhaustively, then solve the
// remaining (n-k)-variable system via a Macaulay-matrix linearisation whose
// regularity degree is estimated as (n-k)+2.
func NewBooleanSolveFXL(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	prm := params(p)
	schema := paramrange.NewSchema()
	max := prm.N - 1
	if max < 0 {
		max = 0
	}
	schema.Declare("k", 0, max, paramrange.Joint)
	return algorithm.New("BooleanSolveFXL", p, schema, booleanSolveFXLCost, opts...)
}

func booleanSolveFXLCost(p *problem.Base, a paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, q := float64(prm.N), float64(prm.Q)
	k := float64(a["k"])
	remaining := n - k
	if remaining < 0 {
		return costmodel.Infeasible
	}
	degree := remaining + 2
	solveLog2 := 2 * numerics.Log2Binomial(remaining+degree, degree)
	timeLog2 := k*log2(q) + solveLog2
	memoryLog2 := numerics.Log2Binomial(remaining+degree, degree)
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewCrossbred constructs the Crossbred (Joux–Vitse style) attack, with
// joint parameters D (global Macaulay degree), d (specialisation degree,
// d<D), and k (number of exhaustively-guessed variables).
func NewCrossbred(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	prm := params(p)
	schema := paramrange.NewSchema()
	max := prm.N - 1
	if max < 1 {
		max = 1
	}
	schema.Declare("k", 0, max, paramrange.Joint)
	schema.Declare("D", 1, max, paramrange.Joint)
	schema.Declare("d", 1, max, paramrange.Joint)
	all := append([]algorithm.Option{algorithm.WithInvalidPredicate(crossbredInvalid)}, opts...)
	return algorithm.New("Crossbred", p, schema, crossbredCost, all...)
}

func crossbredInvalid(a paramrange.Assignment) bool {
	return a["d"] >= a["D"]
}

func crossbredCost(p *problem.Base, a paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, q := float64(prm.N), float64(prm.Q)
	k, dGlobal, dSpecial := float64(a["k"]), float64(a["D"]), float64(a["d"])
	remaining := n - k
	if remaining < dGlobal || dGlobal <= dSpecial {
		return costmodel.Infeasible
	}
	listLog2 := numerics.Log2Binomial(remaining, dSpecial)
	matrixLog2 := 2 * numerics.Log2Binomial(remaining, dGlobal)
	timeLog2 := k*log2(q) + numerics.Log2Add(2*listLog2, matrixLog2)
	memoryLog2 := numerics.Log2Binomial(remaining, dGlobal)
	return costmodel.CostSample{
		TimeLog2:   timeLog2,
		MemoryLog2: memoryLog2,
		Aux:        map[string]any{"remaining_variables": remaining},
	}
}

// NewEstimatorAlgorithms returns the standard four-attack plug-in set for
// one problem.Base, sharing that Base so config propagation from an owning
// Estimator reaches every Algorithm's memory bound. opts (e.g.
// algorithm.WithMetrics) is forwarded to every constructed Algorithm.
func NewEstimatorAlgorithms(p *problem.Base, opts ...algorithm.Option) []*algorithm.Algorithm {
	return []*algorithm.Algorithm{
		NewExhaustiveSearch(p, opts...),
		NewLokshtanov(p, opts...),
		NewBooleanSolveFXL(p, opts...),
		NewCrossbred(p, opts...),
	}
}

// Validate checks the programmer-error-class invariants on Parameters:
// non-positive n/m, or a field order below 2.
func Validate(p Parameters) {
	if p.N <= 0 {
		apperr.Panic("mq: n=%d must be positive", p.N)
	}
	if p.M <= 0 {
		apperr.Panic("mq: m=%d must be positive", p.M)
	}
	if p.Q < 2 {
		apperr.Panic("mq: q=%d must be at least 2", p.Q)
	}
}

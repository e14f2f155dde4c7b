// Package sd implements the binary Syndrome Decoding problem family: the
// {n,k,w} parameters, and two information-set-decoding attacks, Prange (the
// parameter-free baseline) and Stern (the birthday-collision improvement),
// as concrete plug-ins for internal/algorithm. The cost formulas are
// best-effort reconstructions of the published attacks — as spec.md §1
// notes, this core is not a theorem prover for the formulas it hosts.
package sd

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/numerics"
	"github.com/agbru/hardness-estimator/internal/paramrange"
	"github.com/agbru/hardness-estimator/internal/problem"
)

// Parameters is the binary syndrome-decoding instance: an [n,k] linear code
// and a target error weight w.
type Parameters struct {
	N, K, W int
}

// Name implements problem.Parameters.
func (Parameters) Name() string { return "SD" }

// FieldOrder implements problem.Parameters; binary syndrome decoding is
// defined over F2.
func (Parameters) FieldOrder() int { return 2 }

// NewBase constructs the shared problem.Base for a syndrome-decoding
// instance, using the identity unit conversion (the natural unit — a binary
// vector operation — already is a bit operation) and the standard
// expected-solution-count default log2(C(n,w)/2^(n-k)).
func NewBase(p Parameters) *problem.Base {
	nsolutions := numerics.Log2Binomial(float64(p.N), float64(p.W)) - float64(p.N-p.K)
	return problem.New(p, problem.Identity, nsolutions)
}

func params(p *problem.Base) Parameters { return p.Params.(Parameters) }

// NewPrange constructs the Prange information-set-decoding baseline: no
// tuning parameters at all, since Prange's success probability is driven
// entirely by the problem parameters.
func NewPrange(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	schema := paramrange.NewSchema()
	all := append([]algorithm.Option{algorithm.WithQuantum(prangeQuantumCost)}, opts...)
	return algorithm.New("Prange", p, schema, prangeCost, all...)
}

// prangeIterationsLog2 returns log2 of the expected number of random
// information-set choices Prange needs before one contains no error
// coordinate: C(n,w) / C(n-k,w).
func prangeIterationsLog2(prm Parameters) float64 {
	n, k, w := float64(prm.N), float64(prm.K), float64(prm.W)
	return numerics.Log2Binomial(n, w) - numerics.Log2Binomial(n-k, w)
}

// prangeGaussianCostLog2 is the polynomial per-iteration cost of one
// Gaussian elimination over the [n,k] parity-check matrix.
func prangeGaussianCostLog2(prm Parameters) float64 {
	return GaussianEliminationCostLog2(float64(prm.N), float64(prm.K))
}

// GaussianEliminationCostLog2 is the polynomial per-iteration cost of
// row-reducing an [n,k] parity-check matrix to find one information set,
// exported so related problem families (e.g. internal/families/rsd) can
// reuse it instead of re-deriving the same polynomial factor.
func GaussianEliminationCostLog2(n, k float64) float64 {
	return 2*math.Log2(n-k) + math.Log2(n)
}

func prangeCost(p *problem.Base, _ paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	timeLog2 := prangeIterationsLog2(prm) + prangeGaussianCostLog2(prm)
	memoryLog2 := math.Log2(float64(prm.N)) + math.Log2(float64(prm.K))
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// prangeQuantumCost applies a Grover-like square-root speed-up to the
// search-bound portion of Prange's cost (the number of information-set
// draws); the per-iteration Gaussian elimination is classical work run
// inside the oracle and is not itself accelerated.
func prangeQuantumCost(p *problem.Base, _ paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	timeLog2 := prangeIterationsLog2(prm)/2 + prangeGaussianCostLog2(prm)
	memoryLog2 := math.Log2(float64(prm.N)) + math.Log2(float64(prm.K))
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewStern constructs the Stern (birthday-collision) improvement, with joint
// tuning parameters r (Gaussian-elimination reuse count), p (per-half error
// weight), and l (collision-window size), declared in that order.
func NewStern(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	prm := params(p)
	schema := paramrange.NewSchema()
	maxR := prm.K
	if maxR < 1 {
		maxR = 1
	}
	schema.Declare("r", 1, maxR, paramrange.Joint)
	schema.Declare("p", 0, prm.W/2, paramrange.Joint)
	maxL := prm.N - prm.K
	if maxL < 0 {
		maxL = 0
	}
	schema.Declare("l", 0, maxL, paramrange.Joint)
	all := append([]algorithm.Option{algorithm.WithInvalidPredicate(sternInvalid)}, opts...)
	return algorithm.New("Stern", p, schema, sternCost, all...)
}

func sternInvalid(a paramrange.Assignment) bool {
	r, p, l := a["r"], a["p"], a["l"]
	return r < 1 || p < 0 || l < 0
}

// sternCost implements the standard information-set-decoding-with-collision
// cost shape: split the k+l "window" columns in half, build two lists of
// weight-p half-solutions, merge them on the l collision bits, and verify
// the remaining n-k-l coordinates carry the leftover weight w-2p. The
// Gaussian elimination that sets up one random information set is amortised
// over r reuses, per Stern's original construction.
func sternCost(p *problem.Base, a paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, k, w := float64(prm.N), float64(prm.K), float64(prm.W)
	r, pw, l := float64(a["r"]), float64(a["p"]), float64(a["l"])

	window := k + l
	half := window / 2
	remaining := n - window
	leftoverWeight := w - 2*pw

	if half < pw || remaining < leftoverWeight || leftoverWeight < 0 {
		return costmodel.Infeasible
	}

	listLog2 := numerics.Log2Binomial(half, pw)
	mergeLog2 := numerics.Log2Add(listLog2, 2*listLog2-l)
	gaussLog2 := GaussianEliminationCostLog2(n, k) - math.Log2(r)
	perIterationLog2 := numerics.Log2Add(mergeLog2, gaussLog2)

	successLog2 := numerics.Log2Binomial(window, 2*pw) + numerics.Log2Binomial(remaining, leftoverWeight) - numerics.Log2Binomial(n, w)
	iterationsLog2 := -successLog2

	timeLog2 := iterationsLog2 + perIterationLog2
	memoryLog2 := listLog2 + math.Log2(math.Max(half, 1))

	return costmodel.CostSample{
		TimeLog2:   timeLog2,
		MemoryLog2: memoryLog2,
		Aux: map[string]any{
			"list_size_log2": listLog2,
			"window":         window,
		},
	}
}

// NewEstimatorAlgorithms returns the standard {Prange, Stern} plug-in set
// for one problem.Base, sharing that Base so config propagation from an
// owning Estimator reaches every Algorithm's memory bound. opts (e.g.
// algorithm.WithMetrics) is forwarded to every constructed Algorithm.
func NewEstimatorAlgorithms(p *problem.Base, opts ...algorithm.Option) []*algorithm.Algorithm {
	return []*algorithm.Algorithm{NewPrange(p, opts...), NewStern(p, opts...)}
}

func mustPositive(name string, v int) {
	if v <= 0 {
		apperr.Panic("sd: parameter %q must be positive, got %d", name, v)
	}
}

// Validate checks the problem parameters for the invariants spec.md §7.1
// classifies as programmer errors: a negative or zero n/k, and w exceeding
// n-k+1's Singleton-style plausibility bound is deliberately not enforced
// here (the framework hosts implausible instances too — it is not a
// theorem prover, per spec.md §1).
func Validate(p Parameters) {
	mustPositive("n", p.N)
	mustPositive("k", p.K)
	if p.K > p.N {
		apperr.Panic("sd: k=%d must not exceed n=%d", p.K, p.N)
	}
	if p.W < 0 {
		apperr.Panic("sd: w=%d must be non-negative", p.W)
	}
}

// Package rsd implements Regular Syndrome Decoding: syndrome decoding
// restricted to error vectors with exactly one nonzero coordinate per block
// of a fixed partition. It reuses internal/families/sd's unit conversion
// (the identity map; the basic element is still one binary-vector
// operation) and Gaussian-elimination cost helper, adding the
// combinatorial correction regular weight imposes on the attack's success
// probability via numerics.Log2Multinomial.
package rsd

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/families/sd"
	"github.com/agbru/hardness-estimator/internal/numerics"
	"github.com/agbru/hardness-estimator/internal/paramrange"
	"github.com/agbru/hardness-estimator/internal/problem"
)

// Parameters is a regular-syndrome-decoding instance: an [n,k] code, a
// target weight w, and the number of blocks the n coordinates are
// partitioned into. Blocks must be at least w (one error per chosen
// block, at most one error per block overall).
type Parameters struct {
	N, K, W, Blocks int
}

// Name implements problem.Parameters.
func (Parameters) Name() string { return "RSD" }

// FieldOrder implements problem.Parameters; regular syndrome decoding, like
// plain syndrome decoding, is defined over F2.
func (Parameters) FieldOrder() int { return 2 }

// blockSize returns the (assumed uniform) size of each of the Blocks
// coordinate blocks.
func (p Parameters) blockSize() float64 {
	return float64(p.N) / float64(p.Blocks)
}

// regularWeightCountLog2 returns log2 of the number of regular weight-w
// vectors: choose which W of the Blocks blocks carry an error
// (numerics.Log2Multinomial's 2-part case, "w chosen, Blocks-w not
// chosen"), then independently choose the error's position within each of
// the w chosen blocks.
func (p Parameters) regularWeightCountLog2() float64 {
	blocks, w := float64(p.Blocks), float64(p.W)
	selectBlocks := numerics.Log2Multinomial(blocks, w, blocks-w)
	positions := w * log2(p.blockSize())
	return selectBlocks + positions
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// NewBase constructs the shared problem.Base for a regular-syndrome-decoding
// instance, reusing sd's identity unit conversion and defaulting the
// expected-solution count to the regular weight count minus the n-k
// syndrome bits it must collide with.
func NewBase(p Parameters) *problem.Base {
	nsolutions := p.regularWeightCountLog2() - float64(p.N-p.K)
	return problem.New(p, problem.Identity, nsolutions)
}

func params(p *problem.Base) Parameters { return p.Params.(Parameters) }

// NewRegularPrange constructs the regular-weight analogue of sd.Prange: the
// same random-information-set search, but with the regular weight count
// substituted for the plain binomial C(n,w) the unrestricted problem would
// use, since a regular error vector has far fewer possible shapes.
func NewRegularPrange(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
	schema := paramrange.NewSchema()
	return algorithm.New("RegularPrange", p, schema, regularPrangeCost, opts...)
}

func regularPrangeCost(p *problem.Base, _ paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, k := float64(prm.N), float64(prm.K)

	total := prm.regularWeightCountLog2()
	// An information set of size k avoids every error coordinate only if
	// every error-carrying block lies entirely within the n-k redundant
	// coordinates; approximate the surviving count by scaling the block
	// partition down to the redundant coordinates proportionally.
	redundantBlocks := Parameters{N: prm.N - prm.K, K: 0, W: prm.W, Blocks: prm.Blocks}
	avoiding := redundantBlocks.regularWeightCountLog2()

	iterationsLog2 := total - avoiding
	gaussLog2 := sd.GaussianEliminationCostLog2(n, k)
	timeLog2 := iterationsLog2 + gaussLog2
	memoryLog2 := log2(n) + log2(k)
	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewRegularStern constructs the regular-weight analogue of sd.Stern, with
// the same joint {r,p,l} schema, substituting the regular weight count for
// the plain binomial success-probability terms.
func NewRegularStern(p *problem.Base, opts ...algorithm.Option) *algorithm.Algorithm {
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
	all := append([]algorithm.Option{algorithm.WithInvalidPredicate(regularSternInvalid)}, opts...)
	return algorithm.New("RegularStern", p, schema, regularSternCost, all...)
}

func regularSternInvalid(a paramrange.Assignment) bool {
	return a["r"] < 1 || a["p"] < 0 || a["l"] < 0
}

func regularSternCost(p *problem.Base, a paramrange.Assignment) costmodel.CostSample {
	prm := params(p)
	n, k := float64(prm.N), float64(prm.K)
	r, pw, l := float64(a["r"]), float64(a["p"]), float64(a["l"])

	window := k + l
	half := window / 2
	if half < pw {
		return costmodel.Infeasible
	}

	listLog2 := numerics.Log2Binomial(half, pw)
	mergeLog2 := numerics.Log2Add(listLog2, 2*listLog2-l)
	gaussLog2 := sd.GaussianEliminationCostLog2(n, k) - math.Log2(r)
	perIterationLog2 := numerics.Log2Add(mergeLog2, gaussLog2)

	total := prm.regularWeightCountLog2()
	redundantBlocks := Parameters{N: prm.N - int(window), K: 0, W: prm.W, Blocks: prm.Blocks}
	if redundantBlocks.N < 0 || redundantBlocks.Blocks <= 0 {
		return costmodel.Infeasible
	}
	avoiding := redundantBlocks.regularWeightCountLog2()
	iterationsLog2 := total - avoiding

	timeLog2 := iterationsLog2 + perIterationLog2
	memoryLog2 := listLog2 + log2(math.Max(half, 1))

	return costmodel.CostSample{TimeLog2: timeLog2, MemoryLog2: memoryLog2}
}

// NewEstimatorAlgorithms returns the standard {RegularPrange, RegularStern}
// plug-in set for one problem.Base. opts (e.g. algorithm.WithMetrics) is
// forwarded to every constructed Algorithm.
func NewEstimatorAlgorithms(p *problem.Base, opts ...algorithm.Option) []*algorithm.Algorithm {
	return []*algorithm.Algorithm{NewRegularPrange(p, opts...), NewRegularStern(p, opts...)}
}

// Validate checks the programmer-error-class invariants: non-positive n/k,
// a block count smaller than w (there would be nowhere to put every
// error), or a block count that does not divide evenly into n.
func Validate(p Parameters) {
	if p.N <= 0 || p.K <= 0 {
		apperr.Panic("rsd: n=%d,k=%d must be positive", p.N, p.K)
	}
	if p.K > p.N {
		apperr.Panic("rsd: k=%d must not exceed n=%d", p.K, p.N)
	}
	if p.Blocks < p.W {
		apperr.Panic("rsd: blocks=%d must be at least w=%d", p.Blocks, p.W)
	}
	if p.Blocks <= 0 || p.N%p.Blocks != 0 {
		apperr.Panic("rsd: blocks=%d must evenly divide n=%d", p.Blocks, p.N)
	}
}

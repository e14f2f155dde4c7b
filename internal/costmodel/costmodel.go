// Package costmodel defines the cost-model transforms applied around every
// algorithm's pure cost function: unit conversion, the memory-access
// penalty, and the Tilde-O / quantum mode switches. These are the only
// knobs spec.md's ComplexityType/MemoryAccess config fields touch.
package costmodel

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/apperr"
)

// ComplexityType selects which cost transform a caller wants reported.
type ComplexityType int

const (
	// Estimate is the standard, concrete bit-complexity estimate.
	Estimate ComplexityType = iota
	// TildeO strips polylogarithmic factors, if the algorithm exposes a
	// Tilde-O variant; otherwise the transformed cost is +Inf.
	TildeO
)

func (c ComplexityType) String() string {
	if c == TildeO {
		return "tilde_o"
	}
	return "estimate"
}

// MemoryAccessKind names one of the built-in memory-access cost shapes; Custom
// indicates a user-supplied function is in play instead.
type MemoryAccessKind int

const (
	Const MemoryAccessKind = iota
	Log
	Sqrt
	Cbrt
	Custom
)

// MemoryAccess computes the additive time penalty f(M) for a memory
// bit-complexity M (log2 bits), modelling physical memory-access latency.
type MemoryAccess struct {
	Kind MemoryAccessKind
	// Func is used only when Kind == Custom.
	Func func(memoryBitsLog2 float64) float64
}

// ConstAccess is the default: no access penalty.
var ConstAccess = MemoryAccess{Kind: Const}

// Penalty returns f(memoryBitsLog2), the additive time-cost correction for
// this access-cost shape.
func (a MemoryAccess) Penalty(memoryBitsLog2 float64) float64 {
	switch a.Kind {
	case Const:
		return 0
	case Log:
		if memoryBitsLog2 <= 0 {
			return 0
		}
		return math.Log2(memoryBitsLog2)
	case Sqrt:
		return memoryBitsLog2 / 2
	case Cbrt:
		return memoryBitsLog2 / 3
	case Custom:
		if a.Func == nil {
			apperr.Panic("costmodel: MemoryAccess{Kind: Custom} with a nil Func")
		}
		return a.Func(memoryBitsLog2)
	default:
		apperr.Panic("costmodel: unknown MemoryAccessKind %d", a.Kind)
		return 0
	}
}

// CostSample is the tuple a cost function returns for one tuning assignment:
// a time and memory bit-complexity (or their native-unit equivalents before
// conversion), and an open-ended auxiliary map used only for verbose
// reporting (e.g. list sizes). TimeLog2 = +Inf means "infeasible under this
// assignment".
type CostSample struct {
	TimeLog2   float64
	MemoryLog2 float64
	Aux        map[string]any
}

// Infeasible is the canonical "this assignment cannot work" sample.
var Infeasible = CostSample{TimeLog2: math.Inf(1), MemoryLog2: math.Inf(1)}

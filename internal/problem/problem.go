// Package problem defines the base abstraction every cryptographic problem
// family (syndrome decoding, multivariate quadratic, ...) builds on: its
// concrete parameters, the two unit-conversion maps that bridge the
// algorithm's native "basic operations/elements" into bits, and the two
// universal knobs every problem carries (a memory bound and an expected
// solution count).
package problem

import "math"

// Parameters is implemented by each problem family's concrete parameter
// struct (e.g. syndrome decoding's {N,K,W}, MQ's {N,M,Q}). It is immutable
// after construction of the owning Algorithm, per spec.md's data model.
type Parameters interface {
	// Name identifies the problem family, e.g. "SD" or "MQ".
	Name() string
	// FieldOrder returns the order q of the base field the problem is
	// defined over (2 for binary syndrome decoding).
	FieldOrder() int
}

// UnitConversion is a pair of pure, side-effect-free maps from an
// algorithm's native log2-valued unit ("basic operations" for time, "basic
// elements" for memory) to bits. Each problem family supplies its own; for
// binary problems these are typically the identity.
type UnitConversion struct {
	TimeBasicToBits   func(xLog2 float64) float64
	MemoryBasicToBits func(xLog2 float64) float64
}

// Identity is the trivial UnitConversion used by families whose basic
// operation already is a bit operation (e.g. binary syndrome decoding).
var Identity = UnitConversion{
	TimeBasicToBits:   func(x float64) float64 { return x },
	MemoryBasicToBits: func(x float64) float64 { return x },
}

// FieldScaled returns a UnitConversion that multiplies both time and memory
// by log2(q), the natural conversion for problems whose basic element is a
// field element over F_q (e.g. multivariate quadratic systems).
func FieldScaled(q int) UnitConversion {
	if q < 2 {
		q = 2
	}
	scale := logBase2(float64(q))
	return UnitConversion{
		TimeBasicToBits:   func(x float64) float64 { return x + scale },
		MemoryBasicToBits: func(x float64) float64 { return x + scale },
	}
}

func logBase2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// Base holds the two universal problem-wide knobs described in spec.md's
// data model: the memory bound used by the search loop as a hard constraint,
// and the expected-solution count used by some algorithms' cost formulas
// (e.g. to size a birthday search). Both default to values a family supplies
// at construction time; MemoryBoundLog2 defaults to +Inf ("no bound") unless
// the caller sets one explicitly.
type Base struct {
	Params          Parameters
	Conversion      UnitConversion
	MemoryBoundLog2 float64
	NSolutionsLog2  float64
}

// New constructs a Base with no memory bound and the given default solution
// count (each family computes its own default expression, per spec.md
// §3, and passes it here).
func New(params Parameters, conversion UnitConversion, defaultNSolutionsLog2 float64) *Base {
	return &Base{
		Params:          params,
		Conversion:      conversion,
		MemoryBoundLog2: math.Inf(1),
		NSolutionsLog2:  defaultNSolutionsLog2,
	}
}

// ToBitcomplexityTime converts a log2-valued basic-operation count to bits.
func (b *Base) ToBitcomplexityTime(basicOpsLog2 float64) float64 {
	return b.Conversion.TimeBasicToBits(basicOpsLog2)
}

// ToBitcomplexityMemory converts a log2-valued basic-element count to bits.
func (b *Base) ToBitcomplexityMemory(basicElementsLog2 float64) float64 {
	return b.Conversion.MemoryBasicToBits(basicElementsLog2)
}

// OrderOfTheField returns the field order q the problem's parameters declare.
func (b *Base) OrderOfTheField() int {
	return b.Params.FieldOrder()
}

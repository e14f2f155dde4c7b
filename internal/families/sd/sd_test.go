package sd

import (
	"math"
	"testing"

	"github.com/agbru/hardness-estimator/internal/paramrange"
)

func TestPrange_Feasible(t *testing.T) {
	prm := Parameters{N: 100, K: 50, W: 10}
	base := NewBase(prm)
	prange := NewPrange(base)
	time := prange.TimeComplexity()
	if math.IsInf(time, 0) || math.IsNaN(time) {
		t.Fatalf("Prange time = %v, want finite", time)
	}
	if time <= 0 {
		t.Fatalf("Prange time = %v, want positive", time)
	}
}

func TestPrange_NoTuningParameters(t *testing.T) {
	base := NewBase(Parameters{N: 100, K: 50, W: 10})
	prange := NewPrange(base)
	if got := prange.OptimalParameters(); len(got) != 0 {
		t.Fatalf("Prange.OptimalParameters() = %v, want empty", got)
	}
}

func TestPrange_QuantumFasterThanClassical(t *testing.T) {
	base := NewBase(Parameters{N: 100, K: 50, W: 10})
	prange := NewPrange(base)
	classical := prange.TimeComplexity()
	quantum := prange.QuantumTimeComplexity()
	if quantum >= classical {
		t.Fatalf("quantum time %v should be less than classical %v", quantum, classical)
	}
}

func TestStern_Feasible(t *testing.T) {
	base := NewBase(Parameters{N: 100, K: 50, W: 10})
	stern := NewStern(base)
	time := stern.TimeComplexity()
	if math.IsInf(time, 0) || math.IsNaN(time) {
		t.Fatalf("Stern time = %v, want finite", time)
	}
	params := stern.OptimalParameters()
	for _, name := range []string{"r", "p", "l"} {
		if _, ok := params[name]; !ok {
			t.Errorf("Stern optimal parameters missing %q: %v", name, params)
		}
	}
}

func TestStern_ExplicitAssignmentMatchesFormula(t *testing.T) {
	base := NewBase(Parameters{N: 100, K: 50, W: 10})
	stern := NewStern(base)
	explicit := paramrange.Assignment{"r": 2, "p": 3, "l": 4}
	time := stern.TimeComplexity(explicit)
	if math.IsInf(time, 0) || math.IsNaN(time) {
		t.Fatalf("Stern explicit time = %v, want finite", time)
	}
	memory := stern.MemoryComplexity(explicit)
	if math.IsInf(memory, 0) || math.IsNaN(memory) {
		t.Fatalf("Stern explicit memory = %v, want finite", memory)
	}
}

func TestStern_MemoryBoundExcludesLargeLists(t *testing.T) {
	base := NewBase(Parameters{N: 100, K: 50, W: 10})
	base.MemoryBoundLog2 = 5
	stern := NewStern(base)
	time := stern.TimeComplexity()
	if !math.IsInf(time, 1) {
		t.Fatalf("Stern time under a 5-bit memory bound = %v, want +Inf (no feasible sample)", time)
	}
}

func TestStern_InvalidPredicateRejectsNegativeR(t *testing.T) {
	if !sternInvalid(paramrange.Assignment{"r": 0, "p": 1, "l": 1}) {
		t.Fatal("sternInvalid should reject r=0")
	}
	if sternInvalid(paramrange.Assignment{"r": 1, "p": 1, "l": 1}) {
		t.Fatal("sternInvalid should accept r=1,p=1,l=1")
	}
}

func TestValidate_RejectsKGreaterThanN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k > n")
		}
	}()
	Validate(Parameters{N: 10, K: 20, W: 1})
}

func TestValidate_AcceptsWellFormedInstance(t *testing.T) {
	Validate(Parameters{N: 100, K: 50, W: 10})
}

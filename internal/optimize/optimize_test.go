package optimize

import (
	"math"
	"testing"

	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/paramrange"
)

func quadraticCost(assignment paramrange.Assignment) costmodel.CostSample {
	p := float64(assignment["p"])
	// A simple convex function of p with a minimum at p=5, memory grows with p.
	return costmodel.CostSample{
		TimeLog2:   (p-5)*(p-5) + 10,
		MemoryLog2: p,
	}
}

func TestSearch_FindsMinimum(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("p", 0, 10, paramrange.Joint)

	out := Search(Input{
		Schema:          schema,
		CostFn:          quadraticCost,
		MemoryBoundLog2: math.Inf(1),
	})

	if !out.Feasible {
		t.Fatal("expected a feasible minimum")
	}
	if out.Assignment["p"] != 5 {
		t.Fatalf("argmin p = %d, want 5", out.Assignment["p"])
	}
	if math.Abs(out.Sample.TimeLog2-10) > 1e-9 {
		t.Fatalf("min time = %g, want 10", out.Sample.TimeLog2)
	}
}

func TestSearch_MemoryBoundDiscardsSamples(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("p", 0, 10, paramrange.Joint)

	out := Search(Input{
		Schema:          schema,
		CostFn:          quadraticCost,
		MemoryBoundLog2: 3, // excludes p=5 (memory=5); best feasible is p=3
	})

	if !out.Feasible {
		t.Fatal("expected at least one feasible sample with p<=3")
	}
	if out.Assignment["p"] != 3 {
		t.Fatalf("argmin under memory bound = %d, want 3", out.Assignment["p"])
	}
}

func TestSearch_EmptySpaceIsInfeasible(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("p", 0, 10, paramrange.Joint)

	out := Search(Input{
		Schema: schema,
		CostFn: quadraticCost,
		InvalidPredicate: func(paramrange.Assignment) bool {
			return true // reject everything
		},
		MemoryBoundLog2: math.Inf(1),
	})

	if out.Feasible {
		t.Fatal("expected no feasible sample when every tuple is invalid")
	}
}

func TestSearch_TieBreaksOnFirstSeen(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("p", 0, 3, paramrange.Joint)

	out := Search(Input{
		Schema: schema,
		CostFn: func(a paramrange.Assignment) costmodel.CostSample {
			return costmodel.CostSample{TimeLog2: 0, MemoryLog2: 0} // every tuple ties
		},
		MemoryBoundLog2: math.Inf(1),
	})

	if out.Assignment["p"] != 0 {
		t.Fatalf("tie-break winner p = %d, want the first-enumerated value 0", out.Assignment["p"])
	}
}

func TestSearch_IndependentResolvedBeforeJoints(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("r", 0, 20, paramrange.Independent)
	schema.Declare("p", 0, 5, paramrange.Joint)

	out := Search(Input{
		Schema: schema,
		Optimal: map[string]OptimalFn{
			"r": func(fixed paramrange.Assignment) int { return 7 },
		},
		CostFn: func(a paramrange.Assignment) costmodel.CostSample {
			if a["r"] != 7 {
				t.Fatalf("independent r not resolved: got %v", a)
			}
			return costmodel.CostSample{TimeLog2: float64(a["p"]), MemoryLog2: 0}
		},
		MemoryBoundLog2: math.Inf(1),
	})

	if !out.Feasible || out.Assignment["r"] != 7 {
		t.Fatalf("outcome = %+v, want r=7", out)
	}
}

func TestSearch_UnresolvedIndependentPromotedToJoint(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("r", 0, 2, paramrange.Independent) // no solver supplied

	var seen []int
	out := Search(Input{
		Schema: schema,
		CostFn: func(a paramrange.Assignment) costmodel.CostSample {
			seen = append(seen, a["r"])
			return costmodel.CostSample{TimeLog2: float64(2 - a["r"]), MemoryLog2: 0}
		},
		MemoryBoundLog2: math.Inf(1),
	})

	if len(seen) != 3 {
		t.Fatalf("expected r to be enumerated (promoted to joint), saw %v", seen)
	}
	if out.Assignment["r"] != 2 {
		t.Fatalf("argmin r = %d, want 2", out.Assignment["r"])
	}
}

func TestEvaluateExplicit_UsesGivenAssignment(t *testing.T) {
	schema := paramrange.NewSchema()
	schema.Declare("p", 0, 10, paramrange.Joint)

	sample := EvaluateExplicit(Input{
		Schema: schema,
		CostFn: quadraticCost,
	}, paramrange.Assignment{"p": 2})

	if math.Abs(sample.TimeLog2-19) > 1e-9 {
		t.Fatalf("EvaluateExplicit(p=2) time = %g, want 19", sample.TimeLog2)
	}
}

// Package optimize implements the search loop: enumerating tuning tuples,
// invoking a cost function, enforcing the memory bound, and tracking the
// minimum. It has no dependency on the algorithm package — it operates on
// plain function values and a schema so that the algorithm package (which
// owns the Algorithm state machine and calls into this package) cannot form
// an import cycle with it.
package optimize

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/paramrange"
)

// CostFn evaluates one full tuning assignment and returns its (already
// transformed — unit-converted, memory-access-penalised) cost.
type CostFn func(assignment paramrange.Assignment) costmodel.CostSample

// OptimalFn analytically computes the value of one independent tuning
// parameter given the parameters already fixed ahead of it in declaration
// order.
type OptimalFn func(fixed paramrange.Assignment) int

// Input bundles everything one Search call needs: the parameter-range
// engine state for this algorithm, the (already cost-model-transformed)
// cost function, the analytic solvers for independent parameters, the
// optional invalidity predicate and enumerator override, and the memory
// bound to enforce.
type Input struct {
	Schema           *paramrange.Schema
	CostFn           CostFn
	Optimal          map[string]OptimalFn
	InvalidPredicate paramrange.InvalidPredicate
	Enumerator       paramrange.Enumerator
	MemoryBoundLog2  float64

	// OnSampleEvaluated and OnSampleRejected are optional telemetry hooks,
	// called once per enumerated tuple. Both are no-ops if nil: the search
	// loop never depends on a caller wiring them.
	OnSampleEvaluated func()
	OnSampleRejected  func(reason string)
}

// Outcome is the result of a Search: the minimising assignment and its cost
// sample, or Feasible=false if the search space was empty (independents
// contradicted the ranges, every joint tuple was invalid, or every survivor
// exceeded the memory bound).
type Outcome struct {
	Assignment paramrange.Assignment
	Sample     costmodel.CostSample
	Feasible   bool
}

// Search runs the full contract described in spec.md §4.5:
//  1. Resolve independents first, in declaration order, via their analytic
//     solvers — promoting a declared-but-unresolved independent to a joint
//     for this search.
//  2. Freeze independents onto a cloned schema so the enumerator only walks
//     true joints.
//  3. Enumerate joint assignments in the enumerator's order, skipping ones
//     the invalidity predicate rejects.
//  4. Evaluate survivors, discarding any whose memory bit-complexity exceeds
//     the bound.
//  5. Keep the first-seen minimum (deterministic tie-break on enumeration
//     order).
func Search(in Input) Outcome {
	working := in.Schema.Clone()
	fixed := paramrange.Assignment{}

	for _, name := range working.Independents() {
		p := working.Get(name)
		if p.Fixed {
			fixed[name] = p.Min
			continue
		}
		solver, ok := in.Optimal[name]
		if !ok {
			// No analytic routine supplied: promote to joint for this
			// search, per spec.md §4.5 point 1.
			p.Flavour = paramrange.Joint
			continue
		}
		v := solver(cloneAssignment(fixed))
		if v < p.Min {
			v = p.Min
		}
		if v > p.Max {
			v = p.Max
		}
		_ = working.SetValue(name, v)
		fixed[name] = v
	}

	enumerator := in.Enumerator
	if enumerator == nil {
		enumerator = paramrange.CartesianEnumerator{}
	}

	best := Outcome{}
	memoryBound := in.MemoryBoundLog2

	enumerator.Enumerate(working, fixed, func(assignment paramrange.Assignment) bool {
		if in.InvalidPredicate != nil && in.InvalidPredicate(assignment) {
			if in.OnSampleRejected != nil {
				in.OnSampleRejected("invalid_predicate")
			}
			return true
		}
		sample := in.CostFn(assignment)
		if in.OnSampleEvaluated != nil {
			in.OnSampleEvaluated()
		}
		if sample.MemoryLog2 > memoryBound {
			if in.OnSampleRejected != nil {
				in.OnSampleRejected("memory_bound")
			}
			return true
		}
		if math.IsInf(sample.TimeLog2, 1) {
			if in.OnSampleRejected != nil {
				in.OnSampleRejected("infeasible")
			}
			return true
		}
		if !best.Feasible || sample.TimeLog2 < best.Sample.TimeLog2 {
			best = Outcome{Assignment: assignment, Sample: sample, Feasible: true}
		}
		return true
	})

	return best
}

// EvaluateExplicit evaluates a single fully- or partially-specified
// assignment without running a search: any independent parameter not
// present in assignment is resolved via its analytic solver (if present) or
// left unset, mirroring time_complexity(kwargs)'s "cost for that explicit
// assignment" contract from spec.md §4.4.
func EvaluateExplicit(in Input, assignment paramrange.Assignment) costmodel.CostSample {
	full := cloneAssignment(assignment)
	for _, name := range in.Schema.Independents() {
		if _, present := full[name]; present {
			continue
		}
		if solver, ok := in.Optimal[name]; ok {
			full[name] = solver(cloneAssignment(full))
		}
	}
	return in.CostFn(full)
}

func cloneAssignment(a paramrange.Assignment) paramrange.Assignment {
	out := make(paramrange.Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

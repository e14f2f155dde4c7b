package optimize

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/hardness-estimator/internal/costmodel"
	"github.com/agbru/hardness-estimator/internal/paramrange"
)

// tradeoffSchema declares a single joint parameter x in [0,20] whose cost
// function trades memory for time: time falls as x rises, memory rises with
// x. This is the simplest synthetic instance exhibiting the time/memory
// trade-off spec.md §8's memory-bound monotonicity invariant is about,
// independent of any concrete attack family.
func tradeoffSchema() *paramrange.Schema {
	schema := paramrange.NewSchema()
	schema.Declare("x", 0, 20, paramrange.Joint)
	return schema
}

func tradeoffCostFn(assignment paramrange.Assignment) costmodel.CostSample {
	x := float64(assignment["x"])
	return costmodel.CostSample{TimeLog2: 100 - x, MemoryLog2: x}
}

// TestMemoryBound_RaisingCannotIncreaseMinimumTime verifies spec.md §8:
// raising memory_bound monotonically cannot increase the minimum time.
func TestMemoryBound_RaisingCannotIncreaseMinimumTime(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a tighter bound never yields a lower minimum time than a looser one", prop.ForAll(
		func(tight, loose float64) bool {
			if tight > loose {
				tight, loose = loose, tight
			}
			tightOutcome := Search(Input{Schema: tradeoffSchema(), CostFn: tradeoffCostFn, MemoryBoundLog2: tight})
			looseOutcome := Search(Input{Schema: tradeoffSchema(), CostFn: tradeoffCostFn, MemoryBoundLog2: loose})

			if !tightOutcome.Feasible {
				return true // no baseline to compare against under the tighter bound
			}
			if !looseOutcome.Feasible {
				return false // loosening a bound can never make a feasible search infeasible
			}
			return looseOutcome.Sample.TimeLog2 <= tightOutcome.Sample.TimeLog2
		},
		gen.Float64Range(0, 20),
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t)
}

// TestMemoryBound_UnboundedMatchesFreeMinimum verifies that an unbounded
// search (MemoryBoundLog2 = +Inf) always finds a minimum at least as good as
// any explicitly bounded search over the same schema.
func TestMemoryBound_UnboundedMatchesFreeMinimum(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("the free optimum's time never exceeds a bounded search's time", prop.ForAll(
		func(bound float64) bool {
			free := Search(Input{Schema: tradeoffSchema(), CostFn: tradeoffCostFn, MemoryBoundLog2: 1e18})
			bounded := Search(Input{Schema: tradeoffSchema(), CostFn: tradeoffCostFn, MemoryBoundLog2: bound})
			if !bounded.Feasible {
				return true
			}
			return free.Feasible && free.Sample.TimeLog2 <= bounded.Sample.TimeLog2
		},
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t)
}

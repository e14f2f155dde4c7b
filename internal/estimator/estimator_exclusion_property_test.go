package estimator_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/hardness-estimator/internal/estimator"
	"github.com/agbru/hardness-estimator/internal/families/sd"
)

func timeOf(report estimator.Report, name string) (float64, bool) {
	for _, row := range report.Rows {
		if row.AlgorithmName == name {
			return row.TimeLog2, true
		}
	}
	return 0, false
}

// TestExcludingAlgorithm_LeavesOthersUnaffected verifies spec.md §8:
// adding an algorithm to excluded_algorithms cannot change any other
// algorithm's reported time.
func TestExcludingAlgorithm_LeavesOthersUnaffected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("excluding Prange leaves Stern's reported time unchanged", prop.ForAll(
		func(n, k, w int) bool {
			base := sd.NewBase(sd.Parameters{N: n, K: k, W: w})
			est := estimator.New("SD", base, []estimator.Entry{
				{Algorithm: sd.NewPrange(base)},
				{Algorithm: sd.NewStern(base)},
			})

			before := est.Estimate()
			sternBefore, ok := timeOf(before, "Stern")
			if !ok {
				return false
			}

			est.SetExcludedAlgorithms([]string{"Prange"})
			after := est.Estimate()
			sternAfter, ok := timeOf(after, "Stern")
			if !ok {
				return false
			}
			if _, stillPresent := timeOf(after, "Prange"); stillPresent {
				return false
			}
			return sternBefore == sternAfter
		},
		gen.IntRange(20, 200),
		gen.IntRange(5, 19),
		gen.IntRange(2, 8),
	))

	properties.TestingRun(t)
}

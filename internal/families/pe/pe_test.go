package pe

import (
	"math"
	"testing"

	"github.com/agbru/hardness-estimator/internal/estimator"
)

func scenarioParams() Parameters { return Parameters{N: 100, K: 50, Q: 2} }

func TestLeonBirthday_Feasible(t *testing.T) {
	base := NewBase(scenarioParams())
	alg := NewLeonBirthday(base)
	time := alg.TimeComplexity()
	if math.IsInf(time, 0) || math.IsNaN(time) {
		t.Fatalf("LeonBirthday time = %v, want finite", time)
	}
}

func TestLeonBirthday_MoreTrialsLowersTime(t *testing.T) {
	base := NewBase(scenarioParams())
	alg := NewLeonBirthday(base)
	few := alg.TimeComplexity(map[string]int{"trials": 1})
	many := alg.TimeComplexity(map[string]int{"trials": 8})
	if many >= few {
		t.Fatalf("more trials should lower time: trials=1 -> %v, trials=8 -> %v", few, many)
	}
}

func TestOuterExclusion_DoesNotReachInnerSubEstimator(t *testing.T) {
	base := NewBase(scenarioParams())
	outer := estimator.New("PE", base, []estimator.Entry{
		{Algorithm: NewLeonBirthday(base)},
	})
	outer.SetExcludedAlgorithms([]string{"Prange"})

	report := outer.Estimate()
	if len(report.Rows) != 1 || report.Rows[0].AlgorithmName != "LeonBirthday" {
		t.Fatalf("expected LeonBirthday to remain in the outer report, got %+v", report.Rows)
	}
	if math.IsInf(report.Rows[0].TimeLog2, 0) {
		t.Fatalf("LeonBirthday's inner Prange sub-search should still run despite excluding %q on the outer estimator, got time=%v", "Prange", report.Rows[0].TimeLog2)
	}
}

func TestValidate_RejectsKGreaterThanN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k > n")
		}
	}()
	Validate(Parameters{N: 10, K: 20, Q: 2})
}

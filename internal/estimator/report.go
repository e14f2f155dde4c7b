package estimator

import "github.com/agbru/hardness-estimator/internal/paramrange"

// Row is one algorithm's entry in a Report: its bit-complexities at the
// cached optimum, the assignment achieving them, and the optional Tilde-O /
// quantum side-channel columns, present only when the Config requested them
// and the algorithm supports them.
type Row struct {
	AlgorithmName     string
	TimeLog2          float64
	MemoryLog2        float64
	OptimalParameters paramrange.Assignment
	TildeOTimeLog2    *float64
	QuantumTimeLog2   *float64
}

// Report is the output of one Estimator.Estimate() call: one Row per
// applicable, non-excluded algorithm, in registration order. internal/render
// consumes a Report to produce a table or JSON document.
type Report struct {
	ProblemName string
	Rows        []Row
}

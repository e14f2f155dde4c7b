package render

import (
	"encoding/json"
	"math"

	"github.com/agbru/hardness-estimator/internal/estimator"
)

// jsonRow mirrors estimator.Row but renders +Inf/nil as the JSON null the
// frontend's input-dictionary consumer expects, since encoding/json cannot
// marshal +Inf as a number.
type jsonRow struct {
	Algorithm         string         `json:"algorithm"`
	TimeLog2          *float64       `json:"time_log2"`
	MemoryLog2        *float64       `json:"memory_log2"`
	OptimalParameters map[string]int `json:"optimal_parameters,omitempty"`
	TildeOTimeLog2    *float64       `json:"tilde_o_time_log2,omitempty"`
	QuantumTimeLog2   *float64       `json:"quantum_time_log2,omitempty"`
}

type jsonReport struct {
	Problem string    `json:"problem"`
	Rows    []jsonRow `json:"rows"`
}

// JSON renders a Report as an indented JSON document. +Inf bit-complexities
// and an empty optimum both become JSON null, the lossless analogue of the
// table renderer's "--" placeholder.
func JSON(report estimator.Report) ([]byte, error) {
	out := jsonReport{Problem: report.ProblemName}
	for _, row := range report.Rows {
		jr := jsonRow{
			Algorithm:         row.AlgorithmName,
			TimeLog2:          finiteOrNil(row.TimeLog2),
			MemoryLog2:        finiteOrNil(row.MemoryLog2),
			OptimalParameters: row.OptimalParameters,
			TildeOTimeLog2:    row.TildeOTimeLog2,
			QuantumTimeLog2:   row.QuantumTimeLog2,
		}
		if jr.TildeOTimeLog2 != nil {
			jr.TildeOTimeLog2 = finiteOrNil(*row.TildeOTimeLog2)
		}
		if jr.QuantumTimeLog2 != nil {
			jr.QuantumTimeLog2 = finiteOrNil(*row.QuantumTimeLog2)
		}
		out.Rows = append(out.Rows, jr)
	}
	return json.MarshalIndent(out, "", "  ")
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Package render turns an estimator.Report into the two externalised
// surfaces spec.md §6 allows: a box-drawing table and JSON. Both treat +Inf
// and an empty parameter assignment as the symbolic "--" spec.md §4.4/§6
// prescribes for a no-feasible-sample outcome.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/agbru/hardness-estimator/internal/estimator"
)

// placeholder is the rendered form of +Inf / an empty optimum, per spec.md
// §6.
const placeholder = "--"

// TableOptions controls which optional columns Table renders, mirroring the
// estimator.Config fields a CLI exposes as flags.
type TableOptions struct {
	Precision             int
	Truncate              bool
	ShowAllParameters     bool
	ShowTildeOTime        bool
	ShowQuantumComplexity bool
}

// Table renders a Report as a box-drawing table. Columns beyond
// Algorithm/Time/Memory/Parameters are included only when the corresponding
// TableOptions flag is set.
func Table(report estimator.Report, opts TableOptions) string {
	headers := []string{"Algorithm", "Time (bits)", "Memory (bits)", "Parameters"}
	if opts.ShowTildeOTime {
		headers = append(headers, "~O Time")
	}
	if opts.ShowQuantumComplexity {
		headers = append(headers, "Quantum Time")
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		cells := []string{
			row.AlgorithmName,
			formatFloat(row.TimeLog2, opts),
			formatFloat(row.MemoryLog2, opts),
			formatParameters(row.OptimalParameters, opts.ShowAllParameters),
		}
		if opts.ShowTildeOTime {
			cells = append(cells, formatOptionalFloat(row.TildeOTimeLog2, opts))
		}
		if opts.ShowQuantumComplexity {
			cells = append(cells, formatOptionalFloat(row.QuantumTimeLog2, opts))
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, cells := range rows {
		for i, c := range cells {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var b strings.Builder
	writeBorder(&b, widths, '┌', '┬', '┐')
	writeRow(&b, headers, widths)
	writeBorder(&b, widths, '├', '┼', '┤')
	for _, cells := range rows {
		writeRow(&b, cells, widths)
	}
	writeBorder(&b, widths, '└', '┴', '┘')
	return b.String()
}

func writeBorder(b *strings.Builder, widths []int, left, mid, right rune) {
	b.WriteRune(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			b.WriteRune(mid)
		}
	}
	b.WriteRune(right)
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteRune('│')
	for i, c := range cells {
		fmt.Fprintf(b, " %-*s ", widths[i], c)
		b.WriteRune('│')
	}
	b.WriteByte('\n')
}

func formatFloat(v float64, opts TableOptions) string {
	if math.IsInf(v, 1) || math.IsInf(v, -1) || math.IsNaN(v) {
		return placeholder
	}
	rounded := ceilToPrecision(v, opts.Precision, opts.Truncate)
	return strconv.FormatFloat(rounded, 'f', opts.Precision, 64)
}

func formatOptionalFloat(v *float64, opts TableOptions) string {
	if v == nil {
		return placeholder
	}
	return formatFloat(*v, opts)
}

// ceilToPrecision mirrors internal/numerics.CeilToPrecision without importing
// it directly, keeping render a leaf package with no dependency on the
// numerics core.
func ceilToPrecision(x float64, digits int, truncate bool) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	scale := math.Pow(10, float64(digits))
	if truncate {
		return math.Trunc(x*scale) / scale
	}
	return math.Round(x*scale) / scale
}

func formatParameters(assignment map[string]int, showAll bool) string {
	if len(assignment) == 0 {
		return placeholder
	}
	names := make([]string, 0, len(assignment))
	for name := range assignment {
		names = append(names, name)
	}
	sort.Strings(names)
	if !showAll && len(names) > 3 {
		names = names[:3]
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, assignment[name])
	}
	return strings.Join(parts, ", ")
}

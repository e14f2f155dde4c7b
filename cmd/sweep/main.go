// Command sweep renders an HTML line chart of time bit-complexity against
// one swept problem parameter, one series per applicable algorithm, in the
// same "sweep and plot" shape as the pack's plot_pacs_sweep.go.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/agbru/hardness-estimator/internal/algorithm"
	"github.com/agbru/hardness-estimator/internal/apperr"
	"github.com/agbru/hardness-estimator/internal/estimator"
	"github.com/agbru/hardness-estimator/internal/families/sd"
	"github.com/agbru/hardness-estimator/internal/problem"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut *os.File) int {
	sweepParam := "w"
	outPath := "sweep.html"
	start, stop, step := 4, 20, 2
	n, k := 100, 50
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-param":
			i++
			sweepParam = args[i]
		case "-out":
			i++
			outPath = args[i]
		case "-start":
			i++
			start, _ = strconv.Atoi(args[i])
		case "-stop":
			i++
			stop, _ = strconv.Atoi(args[i])
		case "-step":
			i++
			step, _ = strconv.Atoi(args[i])
		case "-n":
			i++
			n, _ = strconv.Atoi(args[i])
		case "-k":
			i++
			k, _ = strconv.Atoi(args[i])
		}
	}
	if sweepParam != "w" {
		fmt.Fprintf(errOut, "sweep: only -param=w is currently wired for the sd family\n")
		return apperr.ExitErrorGeneric
	}
	if step <= 0 {
		fmt.Fprintf(errOut, "sweep: -step must be positive\n")
		return apperr.ExitErrorConfig
	}

	series := map[string][]opts.LineData{}
	var axis []string
	for w := start; w <= stop; w += step {
		base, algs := sdEstimatorAt(n, k, w)
		_ = base
		for _, a := range algs {
			series[a.Name()] = append(series[a.Name()], opts.LineData{Value: a.TimeComplexity()})
		}
		axis = append(axis, strconv.Itoa(w))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "SD time bit-complexity vs. w", Subtitle: fmt.Sprintf("n=%d, k=%d", n, k)}),
		charts.WithXAxisOpts(opts.XAxis{Name: sweepParam}),
		charts.WithYAxisOpts(opts.YAxis{Name: "time (log2 bits)", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(axis)
	for _, name := range []string{"Prange", "Stern"} {
		if data, ok := series[name]; ok {
			line.AddSeries(name, data)
		}
	}

	page := components.NewPage().SetPageTitle("hardness-estimator sweep")
	page.AddCharts(line)

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return apperr.ExitErrorGeneric
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintln(errOut, err)
		return apperr.ExitErrorGeneric
	}
	fmt.Fprintf(out, "wrote %s\n", outPath)
	return apperr.ExitSuccess
}

func sdEstimatorAt(n, k, w int) (*problem.Base, []*algorithm.Algorithm) {
	p := sd.Parameters{N: n, K: k, W: w}
	sd.Validate(p)
	base := sd.NewBase(p)
	algs := sd.NewEstimatorAlgorithms(base)
	entries := make([]estimator.Entry, len(algs))
	for i, a := range algs {
		entries[i] = estimator.Entry{Algorithm: a}
	}
	estimator.New("SD sweep", base, entries)
	return base, algs
}

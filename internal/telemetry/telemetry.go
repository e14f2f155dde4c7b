// Package telemetry wires the optional, end-of-run-only Prometheus and
// OpenTelemetry instrumentation described in SPEC_FULL.md §3: a private
// prometheus.Registry the CLI can dump as text (never scraped over HTTP,
// per spec.md's hot-path-I/O Non-goal), and a tracer that defaults to a
// no-op implementation so Algorithm.TimeComplexity never blocks on an
// exporter unless a caller wires one in explicitly.
package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Metrics collects the search loop's end-of-run counters and histograms
// into a private registry, grounded on the teacher's server-level
// fibcalc_* metric family.
type Metrics struct {
	registry *prometheus.Registry

	samplesEvaluated *prometheus.CounterVec
	samplesRejected  *prometheus.CounterVec
	optimiseDuration *prometheus.HistogramVec
}

// NewMetrics constructs a Metrics instance backed by a fresh, private
// registry — not prometheus.DefaultRegisterer — so nothing here is
// reachable unless the caller explicitly asks for it.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		samplesEvaluated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estimator_samples_evaluated_total",
			Help: "Total number of tuning-parameter assignments evaluated by the search loop.",
		}, []string{"algorithm"}),
		samplesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estimator_samples_rejected_total",
			Help: "Total number of tuning-parameter assignments rejected by the memory bound or an invalidity predicate.",
		}, []string{"algorithm", "reason"}),
		optimiseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "estimator_optimise_duration_seconds",
			Help: "Wall-clock duration of one Algorithm's Optimise search.",
		}, []string{"algorithm"}),
	}
}

// Registry returns the private registry backing this Metrics instance, for
// a caller that wants to dump it as Prometheus text exposition format.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// DumpText gathers every metric family in reg and writes it to w in
// Prometheus text exposition format, the same format a /metrics HTTP
// handler would serve — used here without any HTTP server, per spec.md's
// no-network-I/O-in-the-hot-path Non-goal.
func DumpText(reg *prometheus.Registry, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSampleEvaluated records one evaluated sample for the named
// algorithm.
func (m *Metrics) ObserveSampleEvaluated(algorithm string) {
	m.samplesEvaluated.WithLabelValues(algorithm).Inc()
}

// ObserveSampleRejected records one rejected sample for the named algorithm
// and the reason it was rejected ("memory_bound" or "invalid_predicate").
func (m *Metrics) ObserveSampleRejected(algorithm, reason string) {
	m.samplesRejected.WithLabelValues(algorithm, reason).Inc()
}

// ObserveOptimiseDuration records how long one Optimise search took.
func (m *Metrics) ObserveOptimiseDuration(algorithm string, d time.Duration) {
	m.optimiseDuration.WithLabelValues(algorithm).Observe(d.Seconds())
}

// Tracer returns the estimator's tracer. Callers that never wire an
// OpenTelemetry exporter get otel's global no-op tracer (the default), so
// span creation costs nothing more than a few struct allocations.
func Tracer() trace.Tracer { return otel.Tracer("hardness-estimator") }

// StartOptimiseSpan wraps one Algorithm.Optimise call in a span named
// "Optimise", attaching the algorithm name and (once known) the number of
// tuning tuples the search enumerated.
func StartOptimiseSpan(ctx context.Context, algorithmName string) (context.Context, trace.Span) {
	ctx, span := Tracer().Start(ctx, "Optimise", trace.WithAttributes(
		attribute.String("algorithm", algorithmName),
	))
	return ctx, span
}

// RecordTuplesEvaluated attaches the final enumerated-tuple count to an
// in-flight span, once the search loop knows it.
func RecordTuplesEvaluated(span trace.Span, count int) {
	span.SetAttributes(attribute.Int("tuples_evaluated", count))
}

// Package metrics exposes Prometheus instrumentation for seat table
// generation.  A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

// Generation sources.
const (
	SourceAdHoc = "adhoc" // config posted with the request
	SourceSaved = "saved" // config loaded from the database
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeIllegal  = "illegal_config"
	OutcomeTimeout  = "timeout"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

type Metrics struct {
	reg         *prometheus.Registry
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	seated      prometheus.Histogram
}

// New registers the generation metrics plus the Go and process collectors on
// a fresh registry under namespace (default "seating").
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "seating"
	}
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Seat table generations by source and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock time of seat table generations.",
			Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		}, []string{"source", "outcome"}),
		seated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "seat_table_cells",
			Help:      "Number of cells of generated seat tables.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 8), // 4 .. 512
		}),
	}
	m.reg.MustRegister(
		m.generations,
		m.duration,
		m.seated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Outcome classifies a generation error.
func Outcome(err error) string {
	var ice *seating.IllegalConfigError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &ice):
		return OutcomeIllegal
	case errors.Is(err, seating.ErrGenerationTimeout):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	}
	return OutcomeError
}

// ObserveGeneration records one generation that started at start.
func (m *Metrics) ObserveGeneration(source string, start time.Time, table *seating.SeatTable, err error) {
	if m == nil {
		return
	}
	outcome := Outcome(err)
	m.generations.WithLabelValues(source, outcome).Inc()
	m.duration.WithLabelValues(source, outcome).Observe(time.Since(start).Seconds())
	if table != nil {
		m.seated.Observe(float64(table.RowCount() * table.ColumnCount()))
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

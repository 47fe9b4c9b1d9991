package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics represents the collection of harness metrics. Each instance owns
// its registry so a run never collides with another one in the same process.
type Metrics struct {
	Registry *prometheus.Registry

	CommandInvocations  *prometheus.CounterVec
	MeasurementFailures *prometheus.CounterVec
	MeasurementMillis   *prometheus.GaugeVec
	BuildFailures       prometheus.Counter
	BuildStepDuration   *prometheus.HistogramVec
	BenchmarksProcessed prometheus.Counter
}

// NewMetrics creates and registers all harness metrics
func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.CommandInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runbench_command_invocations_total",
			Help: "Total number of external commands started, by phase",
		},
		[]string{"phase"},
	)

	m.MeasurementFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runbench_measurement_failures_total",
			Help: "Measurements that ended unavailable, by runtime",
		},
		[]string{"runtime"},
	)

	m.MeasurementMillis = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "runbench_measurement_milliseconds",
			Help: "Averaged wall-clock time of the last measurement",
		},
		[]string{"benchmark", "runtime"},
	)

	m.BuildFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "runbench_build_failures_total",
			Help: "Benchmarks whose build pipeline failed",
		},
	)

	m.BuildStepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runbench_build_step_duration_seconds",
			Help:    "Duration of build pipeline steps in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"step"},
	)

	m.BenchmarksProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "runbench_benchmarks_processed_total",
			Help: "Benchmarks that went through the runtime matrix",
		},
	)

	m.Registry.MustRegister(
		m.CommandInvocations,
		m.MeasurementFailures,
		m.MeasurementMillis,
		m.BuildFailures,
		m.BuildStepDuration,
		m.BenchmarksProcessed,
	)

	return m
}

// ObserveBuildStep records one build step.
func (m *Metrics) ObserveBuildStep(step string, d time.Duration) {
	m.CommandInvocations.WithLabelValues("build").Inc()
	m.BuildStepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// ObserveMeasurement records a finished measurement. ok=false counts a failure.
func (m *Metrics) ObserveMeasurement(benchmark, runtime string, millis float64, ok bool) {
	if !ok {
		m.MeasurementFailures.WithLabelValues(runtime).Inc()
		return
	}
	m.MeasurementMillis.WithLabelValues(benchmark, runtime).Set(millis)
}

// Push sends the registry to a Pushgateway under the given job and run id.
func (m *Metrics) Push(ctx context.Context, url, job, runID string) error {
	pusher := push.New(url, job).
		Gatherer(m.Registry).
		Grouping("run_id", runID).
		Client(&http.Client{Timeout: 10 * time.Second})
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}

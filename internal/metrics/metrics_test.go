package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.CommandInvocations)
	assert.NotNil(t, m.MeasurementFailures)
	assert.NotNil(t, m.MeasurementMillis)
	assert.NotNil(t, m.BuildFailures)
	assert.NotNil(t, m.BuildStepDuration)
	assert.NotNil(t, m.BenchmarksProcessed)

	// A second instance must not panic on registration.
	assert.NotPanics(t, func() { NewMetrics() })
}

func TestObserveMeasurement(t *testing.T) {
	m := NewMetrics()

	m.ObserveMeasurement("quicksort", "node", 12.5, true)
	m.ObserveMeasurement("quicksort", "qjs", 0, false)
	m.ObserveMeasurement("mandelbrot", "qjs", 0, false)

	assert.Equal(t, 12.5, testutil.ToFloat64(m.MeasurementMillis.WithLabelValues("quicksort", "node")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MeasurementFailures.WithLabelValues("qjs")))
}

func TestObserveBuildStep(t *testing.T) {
	m := NewMetrics()

	m.ObserveBuildStep("wasm-opt", 200*time.Millisecond)
	m.ObserveBuildStep("wamrc", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandInvocations.WithLabelValues("build")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.BuildStepDuration))
}

func TestPush(t *testing.T) {
	var gotPath string
	var gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	m := NewMetrics()
	m.BenchmarksProcessed.Inc()

	err := m.Push(context.Background(), ts.URL, "runbench", "abc")
	require.NoError(t, err)
	assert.Equal(t, "/metrics/job/runbench/run_id/abc", gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestPush_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := NewMetrics().Push(context.Background(), ts.URL, "runbench", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push metrics")
}

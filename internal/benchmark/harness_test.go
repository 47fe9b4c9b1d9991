package benchmark

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarness_SingleRuntimeScenario(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "quicksort", "mandelbrot", "fibonacci")

	cfg := testConfig(t, dir)
	cfg.Times = 3
	cfg.Warmup = 1
	cfg.Benchmarks = config.NewSet("quicksort")
	cfg.Runtimes = config.NewSet("node")

	mock := &executor.MockExecutor{RunFunc: fixedElapsed(8 * time.Millisecond)}
	printer, out := newPrinter()
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	h := &Harness{Config: cfg, Toolchain: testToolchain(), Registry: reg, Exec: mock, Printer: printer, Metrics: metrics.NewMetrics()}

	outcome, err := h.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Empty(t, outcome.BuildFailures)

	res := outcome.Results[0]
	assert.Equal(t, "quicksort", res.Benchmark)
	require.Len(t, res.Measurements, 1)
	assert.Equal(t, Node, res.Measurements[0].Runtime)
	assert.Equal(t, 8*time.Millisecond, res.Measurements[0].Elapsed)

	var builds, runs int
	for _, c := range mock.Calls() {
		if isRuntimeCall(c) {
			runs++
			assert.Equal(t, "/bin/node quicksort.js", c.String())
		} else {
			builds++
			assert.NotContains(t, c.String(), "mandelbrot")
			assert.NotContains(t, c.String(), "fibonacci")
		}
	}
	assert.Equal(t, 12, builds)
	assert.Equal(t, 4, runs)

	text := out.String()
	assert.Contains(t, text, "options")
	assert.Contains(t, text, "QJS_PATH: /bin/qjs")
	assert.Contains(t, text, "NODE_PATH: /bin/node")
	assert.Contains(t, text, "strategy: run 3 times and get average")
	assert.Contains(t, text, "clean generated files: true")
	assert.Contains(t, text, "Skip mandelbrot benchmark due to argument filter.")
	assert.Contains(t, text, "quicksort")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.Metrics.BenchmarksProcessed))
}

func TestHarness_BuildFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "alpha", "beta")

	cfg := testConfig(t, dir)
	cfg.Runtimes = config.NewSet("qjs")

	mock := &executor.MockExecutor{
		RunFunc: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
			if cmd.Name == "moon" && strings.Contains(cmd.String(), "alpha") {
				return executor.Result{ExitCode: 1}, &executor.ExitError{Command: cmd.String(), ExitCode: 1, Err: errors.New("exit status 1")}
			}
			return executor.Result{Elapsed: 3 * time.Millisecond}, nil
		},
	}
	printer, out := newPrinter()
	h := &Harness{Config: cfg, Toolchain: testToolchain(), Registry: &Registry{}, Exec: mock, Printer: printer}

	outcome, err := h.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, outcome.BuildFailures, 1)
	assert.Equal(t, "alpha", outcome.BuildFailures[0].Benchmark)
	assert.Equal(t, "moon clean", outcome.BuildFailures[0].Step)

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "beta", outcome.Results[0].Benchmark)
	assert.Contains(t, out.String(), "Build of alpha failed at moon clean")
}

func TestHarness_WarnsOnUnknownInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.Unknown = []string{"--bogus=1"}
	cfg.Runtimes = config.NewSet("v8,node")

	printer, out := newPrinter()
	h := &Harness{Config: cfg, Toolchain: testToolchain(), Registry: &Registry{}, Exec: &executor.MockExecutor{}, Printer: printer}

	outcome, err := h.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	assert.Contains(t, out.String(), "Ignoring unrecognized option --bogus=1")
	assert.Contains(t, out.String(), "Unknown runtime v8 in --runtimes")
}

func TestHarness_Cleanup(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "fib")
	for _, f := range []string{"fib.wasm", "fib.aot", BuildLog, "fib.wat"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0644))
	}

	cfg := testConfig(t, dir)
	cfg.Runtimes = config.NewSet("node")
	printer, _ := newPrinter()
	h := &Harness{Config: cfg, Toolchain: testToolchain(), Registry: &Registry{}, Exec: &executor.MockExecutor{}, Printer: printer}

	_, err := h.Run(context.Background())
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "fib.wasm"))
	assert.NoFileExists(t, filepath.Join(dir, "fib.aot"))
	assert.NoFileExists(t, filepath.Join(dir, BuildLog))
	assert.FileExists(t, filepath.Join(dir, "fib.wat"))
	assert.FileExists(t, filepath.Join(dir, "fib.ts"))

	// --no-clean keeps artifacts
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fib.wasm"), nil, 0644))
	cfg.Clean = false
	_, err = h.Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "fib.wasm"))
}

func TestHarness_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	printer, _ := newPrinter()
	mock := &executor.MockExecutor{}
	h := &Harness{Config: testConfig(t, dir), Toolchain: testToolchain(), Registry: &Registry{}, Exec: mock, Printer: printer}

	outcome, err := h.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, outcome)
	assert.Empty(t, outcome.Results)
	assert.Empty(t, mock.Calls())
}

func TestClean_MissingDirIsFine(t *testing.T) {
	assert.NoError(t, Clean(filepath.Join(t.TempDir(), "gone")))
}

package benchmark

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Steps(t *testing.T) {
	p := &Pipeline{Toolchain: testToolchain(), Dir: "/bench", OptLevel: 3}
	steps := p.Steps(Unit{Name: "fib", SourcePath: "fib.ts"})

	want := []string{
		"/bin/node /repo/build/cli/ts2wasm.js fib.ts --opt 3 --output fib.wasm",
		"wasm-tools print fib.wasm -o fib.wat",
		"wasm-opt -all -O3 -o fib.wasm fib.wasm",
		"/repo/wamrc --enable-gc --size-level=0 -o fib.aot fib.wasm",
		"moon clean --source-dir fib",
		"moon build --source-dir fib --target wasm-gc",
		"moon build --source-dir fib --target wasm",
		"moon build --source-dir fib --target wasm-gc --output-wat",
		"wasm-opt -all -O3 fib/target/wasm-gc/release/build/lib/lib.wasm -o fib/target/wasm-gc/release/build/lib/lib.wasm",
		"wasm-opt -all -O3 fib/target/wasm/release/build/lib/lib.wasm -o fib/target/wasm/release/build/lib/lib.wasm",
		"/repo/wamrc --enable-gc --size-level=0 -o fib/target/wasm-gc/release/build/lib/lib.aot fib/target/wasm-gc/release/build/lib/lib.wasm",
		"/repo/wamrc --enable-gc --size-level=0 -o fib/target/wasm/release/build/lib/lib.aot fib/target/wasm/release/build/lib/lib.wasm",
	}
	require.Len(t, steps, len(want))
	for i, s := range steps {
		assert.Equal(t, want[i], s.Command.String(), "step %d", i+1)
		assert.Equal(t, "/bench", s.Command.Dir)
	}

	var logged []string
	for _, s := range steps {
		if s.Logged {
			logged = append(logged, s.Name)
		}
	}
	assert.Equal(t, []string{
		"ts2wasm", "wamrc", "moon clean", "moon build wasm-gc", "moon build wasm",
		"moon build wat", "wamrc wasm-gc", "wamrc wasm",
	}, logged)
}

func TestPipeline_Build(t *testing.T) {
	dir := t.TempDir()
	m := metrics.NewMetrics()
	mock := &executor.MockExecutor{
		RunFunc: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
			if cmd.Stdout != nil {
				_, _ = cmd.Stdout.Write([]byte(cmd.Name + "\n"))
			}
			return executor.Result{}, nil
		},
	}
	p := &Pipeline{Exec: mock, Toolchain: testToolchain(), Dir: dir, OptLevel: 2, Metrics: m}

	require.NoError(t, p.Build(context.Background(), Unit{Name: "fib", SourcePath: "fib.ts"}))
	assert.Len(t, mock.Calls(), 12)
	assert.Contains(t, mock.Calls()[0].String(), "--opt 2")

	// The log holds only the last logged step's output.
	data, err := os.ReadFile(filepath.Join(dir, BuildLog))
	require.NoError(t, err)
	assert.Equal(t, "/repo/wamrc\n", string(data))

	assert.Equal(t, 12.0, testutil.ToFloat64(m.CommandInvocations.WithLabelValues("build")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BuildFailures))
}

func TestPipeline_BuildFailureStops(t *testing.T) {
	dir := t.TempDir()
	m := metrics.NewMetrics()
	boom := errors.New("exit status 1")
	mock := &executor.MockExecutor{
		RunFunc: func(_ context.Context, cmd executor.Command) (executor.Result, error) {
			if cmd.Name == "wasm-opt" {
				return executor.Result{ExitCode: 1}, &executor.ExitError{Command: cmd.String(), ExitCode: 1, Err: boom}
			}
			return executor.Result{}, nil
		},
	}
	p := &Pipeline{Exec: mock, Toolchain: testToolchain(), Dir: dir, Metrics: m}

	err := p.Build(context.Background(), Unit{Name: "fib", SourcePath: "fib.ts"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuild)
	assert.ErrorIs(t, err, boom)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "fib", buildErr.Benchmark)
	assert.Equal(t, "wasm-opt", buildErr.Step)
	assert.True(t, strings.HasPrefix(err.Error(), "build failed: fib"))

	assert.Len(t, mock.Calls(), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildFailures))
}

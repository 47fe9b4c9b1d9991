package benchmark

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"

	"github.com/stretchr/testify/require"
)

func testToolchain() *toolchain.Toolchain {
	return &toolchain.Toolchain{
		Qjs:            "/bin/qjs",
		Node:           "/bin/node",
		Ts2wasm:        "/repo/build/cli/ts2wasm.js",
		Iwasm:          "/repo/iwasm_gc",
		Wamrc:          "/repo/wamrc",
		NodeWasmRunner: "/repo/run_module_on_node.js",
		WasmTools:      "wasm-tools",
		WasmOpt:        "wasm-opt",
		Moon:           "moon",
	}
}

func testConfig(t *testing.T, dir string) *config.RunConfiguration {
	t.Helper()
	return &config.RunConfiguration{
		Times:     1,
		StackSize: config.DefaultStackSize,
		GCHeap:    config.DefaultGCHeap,
		Clean:     true,
		BenchDir:  dir,
		Root:      filepath.Join(dir, "..", ".."),
		OptLevel:  config.DefaultOptLevel,
	}
}

// writeBenchmarks creates name.ts (and name.js unless tsOnly) for each name.
func writeBenchmarks(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		tsOnly := strings.HasSuffix(n, "!")
		n = strings.TrimSuffix(n, "!")
		require.NoError(t, os.WriteFile(filepath.Join(dir, n+".ts"), []byte("// "+n), 0644))
		if !tsOnly {
			require.NoError(t, os.WriteFile(filepath.Join(dir, n+".js"), []byte("// "+n), 0644))
		}
	}
}

// fixedElapsed answers every command successfully after d.
func fixedElapsed(d time.Duration) func(context.Context, executor.Command) (executor.Result, error) {
	return func(context.Context, executor.Command) (executor.Result, error) {
		return executor.Result{Elapsed: d}, nil
	}
}

func newPrinter() (*ui.Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return ui.NewPrinter(&buf), &buf
}

// isRuntimeCall reports whether a recorded command is a measurement rather
// than a build step.
func isRuntimeCall(c executor.Command) bool {
	s := c.String()
	return strings.Contains(s, "-f main") || strings.HasSuffix(s, ".js") && !strings.Contains(s, "ts2wasm")
}

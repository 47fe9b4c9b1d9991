package toolchain

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Toolchain holds every executable and script path a run needs.
type Toolchain struct {
	Qjs  string
	Node string

	// Relative to the install tree; existence is not checked up front so a
	// missing compiler surfaces as a per-benchmark build failure.
	Ts2wasm        string
	Iwasm          string
	Wamrc          string
	NodeWasmRunner string

	// Taken from PATH by name when not found.
	WasmTools string
	WasmOpt   string
	Moon      string
}

// Resolve locates qjs and node (fatal if either is missing) and derives the
// remaining tool paths from root.
func Resolve(root string) (*Toolchain, error) {
	qjs, err := Locate("qjs", QjsStrategies(root)...)
	if err != nil {
		return nil, fmt.Errorf("failed to locate qjs: %w", err)
	}
	node, err := Locate("node", NodeStrategies()...)
	if err != nil {
		return nil, fmt.Errorf("failed to locate node: %w", err)
	}

	tc := &Toolchain{
		Qjs:            qjs,
		Node:           node,
		Ts2wasm:        filepath.Join(root, "build", "cli", "ts2wasm.js"),
		Iwasm:          filepath.Join(root, "runtime-library", "build", "iwasm_gc"),
		Wamrc:          filepath.Join(root, "runtime-library", "deps", "wamr-gc", "wamr-compiler", "build", "wamrc"),
		NodeWasmRunner: filepath.Join(root, "tools", "validate", "run_module", "run_module_on_node.js"),
		WasmTools:      optional("wasm-tools"),
		WasmOpt:        optional("wasm-opt"),
		Moon:           optional("moon"),
	}

	for _, tool := range []struct{ name, path string }{
		{"ts2wasm", tc.Ts2wasm},
		{"iwasm", tc.Iwasm},
		{"wamrc", tc.Wamrc},
	} {
		if !fileExists(tool.path) {
			slog.Warn("Tool not found in install tree", "tool", tool.name, "path", tool.path)
		}
	}
	return tc, nil
}

// optional resolves a PATH tool, falling back to the bare name so the
// failure is reported by the step that uses it.
func optional(name string) string {
	if path, err := execLookPath(name); err == nil {
		return path
	}
	slog.Debug("Tool not on PATH", "tool", name)
	return name
}

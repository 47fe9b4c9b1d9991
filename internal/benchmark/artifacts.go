package benchmark

import "path/filepath"

// Artifacts lists every file the build pipeline produces for one benchmark.
// Paths are relative to the benchmark directory.
type Artifacts struct {
	Wasm string // name.wasm from ts2wasm, optimized in place
	Wat  string
	AOT  string

	// MoonBit wasm-gc target
	GCWasm string
	GCAOT  string

	// MoonBit linear-memory wasm target
	Wasm1    string
	Wasm1AOT string

	MoonJS string
	JS     string // hand-written reference program
}

// ArtifactsFor derives the artifact paths for a benchmark name.
func ArtifactsFor(name string) Artifacts {
	gcDir := filepath.Join(name, "target", "wasm-gc", "release", "build", "lib")
	wasmDir := filepath.Join(name, "target", "wasm", "release", "build", "lib")
	return Artifacts{
		Wasm:     name + ".wasm",
		Wat:      name + ".wat",
		AOT:      name + ".aot",
		GCWasm:   filepath.Join(gcDir, "lib.wasm"),
		GCAOT:    filepath.Join(gcDir, "lib.aot"),
		Wasm1:    filepath.Join(wasmDir, "lib.wasm"),
		Wasm1AOT: filepath.Join(wasmDir, "lib.aot"),
		MoonJS:   filepath.Join(name, "target", "js", "release", "build", "main", "main.js"),
		JS:       name + ".js",
	}
}

package benchmark

import (
	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
)

// RuntimeID names one (artifact, engine) combination.
type RuntimeID string

const (
	MoonbitWasmAOT    RuntimeID = "moonbit-wasm-aot"
	MoonbitWasm       RuntimeID = "moonbit-wasm"
	WamrInterp        RuntimeID = "wamr-interp"
	WamrAOT           RuntimeID = "wamr-aot"
	NodeWasm          RuntimeID = "node-wasm"
	MoonbitNodeWasm   RuntimeID = "moonbit-node-wasm"
	Qjs               RuntimeID = "qjs"
	Node              RuntimeID = "node"
	MoonbitWamrInterp RuntimeID = "moonbit-wamr-interp"
	MoonbitWamrAOT    RuntimeID = "moonbit-wamr-aot"
	MoonbitQjs        RuntimeID = "moonbit-qjs"
	MoonbitNode       RuntimeID = "moonbit-node"
)

// Runtime describes how one RuntimeID is presented and invoked.
type Runtime struct {
	ID      RuntimeID
	Label   string // report column header
	Display string // progress-line name
	Engine  func(tc *toolchain.Toolchain) string
	// Args builds the argument vector that follows the engine binary.
	Args func(a Artifacts, tc *toolchain.Toolchain, extra []string) []string
}

// Command renders the invocation for a unit, run from dir.
func (r Runtime) Command(tc *toolchain.Toolchain, u Unit, dir string) executor.Command {
	a := ArtifactsFor(u.Name)
	if u.JSPath != "" {
		a.JS = u.JSPath
	}
	return executor.Command{
		Name: r.Engine(tc),
		Args: r.Args(a, tc, u.ExtraFlags),
		Dir:  dir,
	}
}

func iwasm(tc *toolchain.Toolchain) string { return tc.Iwasm }
func qjs(tc *toolchain.Toolchain) string   { return tc.Qjs }
func node(tc *toolchain.Toolchain) string  { return tc.Node }

// iwasmArgs places extra WAMR options before the function selector.
func iwasmArgs(file string, extra []string) []string {
	args := append([]string{}, extra...)
	return append(args, "-f", "main", file)
}

// Runtimes is the fixed execution matrix in execution order.
var Runtimes = []Runtime{
	{
		ID: MoonbitWasmAOT, Label: "mbt wasm1 aot", Display: "MoonBit Wasm1 AoT",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return iwasmArgs(a.Wasm1AOT, nil)
		},
	},
	{
		ID: MoonbitWasm, Label: "mbt wasm1", Display: "MoonBit Wasm1",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return iwasmArgs(a.Wasm1, nil)
		},
	},
	{
		ID: WamrInterp, Label: "interp", Display: "WAMR interpreter",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, extra []string) []string {
			return iwasmArgs(a.Wasm, extra)
		},
	},
	{
		ID: WamrAOT, Label: "aot", Display: "WAMR AoT",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, extra []string) []string {
			return iwasmArgs(a.AOT, extra)
		},
	},
	{
		ID: NodeWasm, Label: "v8 wasm", Display: "Node Wasm",
		Engine: node,
		Args: func(a Artifacts, tc *toolchain.Toolchain, _ []string) []string {
			return []string{tc.NodeWasmRunner, "-s", "-f", "main", a.Wasm}
		},
	},
	{
		ID: MoonbitNodeWasm, Label: "mbt v8 wasm", Display: "MoonBit Node Wasm",
		Engine: node,
		Args: func(a Artifacts, tc *toolchain.Toolchain, _ []string) []string {
			return []string{tc.NodeWasmRunner, "-s", "-f", "main", a.GCWasm}
		},
	},
	{
		ID: Qjs, Label: "qjs", Display: "QuickJS",
		Engine: qjs,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return []string{a.JS}
		},
	},
	{
		ID: Node, Label: "Node", Display: "Node",
		Engine: node,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return []string{a.JS}
		},
	},
	{
		ID: MoonbitWamrInterp, Label: "mbt interp", Display: "MoonBit WAMR interpreter",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, extra []string) []string {
			return iwasmArgs(a.GCWasm, extra)
		},
	},
	{
		ID: MoonbitWamrAOT, Label: "mbt aot", Display: "MoonBit WAMR AoT",
		Engine: iwasm,
		Args: func(a Artifacts, _ *toolchain.Toolchain, extra []string) []string {
			return iwasmArgs(a.GCAOT, extra)
		},
	},
	{
		ID: MoonbitQjs, Label: "mbt qjs", Display: "MoonBit QuickJS",
		Engine: qjs,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return []string{a.MoonJS}
		},
	},
	{
		ID: MoonbitNode, Label: "mbt node", Display: "MoonBit Node",
		Engine: node,
		Args: func(a Artifacts, _ *toolchain.Toolchain, _ []string) []string {
			return []string{a.MoonJS}
		},
	},
}

// LookupRuntime finds a runtime by ID.
func LookupRuntime(id RuntimeID) (Runtime, bool) {
	for _, r := range Runtimes {
		if r.ID == id {
			return r, true
		}
	}
	return Runtime{}, false
}

// UnknownRuntimes returns the names in a --runtimes filter that match no
// runtime.
func UnknownRuntimes(names []string) []string {
	var unknown []string
	for _, n := range names {
		if _, ok := LookupRuntime(RuntimeID(n)); !ok {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

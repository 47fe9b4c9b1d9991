package report

import (
	"github.com/moonbit-community/Wasmnizer-ts/internal/benchmark"
)

// Record holds one benchmark's averaged times in milliseconds. A runtime
// missing from Times was filtered out or failed.
type Record struct {
	Benchmark string
	Times     map[benchmark.RuntimeID]float64
}

// Time returns the time for a runtime and whether it is present.
func (r Record) Time(id benchmark.RuntimeID) (float64, bool) {
	v, ok := r.Times[id]
	return v, ok
}

// NewRecords builds one Record per result, in processing order. Only
// available measurements are kept.
func NewRecords(results []benchmark.Result) []Record {
	records := make([]Record, 0, len(results))
	for _, res := range results {
		rec := Record{Benchmark: res.Benchmark, Times: map[benchmark.RuntimeID]float64{}}
		for _, m := range res.Measurements {
			if m.Available() {
				rec.Times[m.Runtime] = m.Millis()
			}
		}
		records = append(records, rec)
	}
	return records
}

// Ratio is a derived column Num/Den.
type Ratio struct {
	Label string
	Num   benchmark.RuntimeID
	Den   benchmark.RuntimeID
}

// Value is present only when both operands are present and Den is non-zero.
func (q Ratio) Value(r Record) (float64, bool) {
	num, ok := r.Time(q.Num)
	if !ok {
		return 0, false
	}
	den, ok := r.Time(q.Den)
	if !ok || den == 0 {
		return 0, false
	}
	return num / den, true
}

// TimeColumns is the report order of the per-runtime time columns.
var TimeColumns = []benchmark.RuntimeID{
	benchmark.MoonbitWasmAOT,
	benchmark.MoonbitWasm,
	benchmark.WamrInterp,
	benchmark.WamrAOT,
	benchmark.Qjs,
	benchmark.Node,
	benchmark.NodeWasm,
	benchmark.MoonbitWamrInterp,
	benchmark.MoonbitWamrAOT,
	benchmark.MoonbitQjs,
	benchmark.MoonbitNode,
	benchmark.MoonbitNodeWasm,
}

// Ratios is the report order of the derived ratio columns.
var Ratios = []Ratio{
	{"mbt/ts(interp)", benchmark.MoonbitWamrInterp, benchmark.WamrInterp},
	{"mbt/ts(aot)", benchmark.MoonbitWamrAOT, benchmark.WamrAOT},
	{"mbt/js(qjs)", benchmark.MoonbitQjs, benchmark.Qjs},
	{"mbt/ts(v8 wasm)", benchmark.MoonbitNodeWasm, benchmark.NodeWasm},
	{"mbt/js(node)", benchmark.MoonbitNode, benchmark.Node},
	{"interp/qjs", benchmark.WamrInterp, benchmark.Qjs},
	{"mbt interp/qjs", benchmark.MoonbitWamrInterp, benchmark.Qjs},
	{"mbt aot/qjs", benchmark.MoonbitWamrAOT, benchmark.Qjs},
	{"aot/qjs", benchmark.WamrAOT, benchmark.Qjs},
	{"WAMR_interpreter/node", benchmark.WamrInterp, benchmark.Node},
	{"WAMR_aot/node", benchmark.WamrAOT, benchmark.Node},
	{"mbt/ts wasm1/interp", benchmark.MoonbitWasm, benchmark.WamrInterp},
	{"mbt wasm1/wasm-gc", benchmark.MoonbitWasm, benchmark.MoonbitWamrInterp},
	{"mbt wasm1/wasm-gc(aot)", benchmark.MoonbitWasmAOT, benchmark.MoonbitWamrAOT},
	{"mbt wasm1(aot)/qjs", benchmark.MoonbitWasmAOT, benchmark.Qjs},
	{"mbt wasm1/qjs", benchmark.MoonbitWasm, benchmark.Qjs},
}

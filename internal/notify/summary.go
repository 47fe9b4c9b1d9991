package notify

import (
	"fmt"
	"strings"

	"github.com/moonbit-community/Wasmnizer-ts/internal/benchmark"
)

// Summary renders a short plain-text digest of a run for chat.
func Summary(outcome *benchmark.Outcome) string {
	var b strings.Builder

	if outcome == nil {
		return "Benchmark run produced no results"
	}

	fmt.Fprintf(&b, "Benchmark run finished: %d benchmarks measured, %d build failures\n",
		len(outcome.Results), len(outcome.BuildFailures))

	for _, res := range outcome.Results {
		var ok, failed []string
		for _, m := range res.Measurements {
			if m.Available() {
				ok = append(ok, fmt.Sprintf("%s %.2fms", m.Runtime, m.Millis()))
			} else {
				failed = append(failed, string(m.Runtime))
			}
		}
		fmt.Fprintf(&b, "• %s: %s", res.Benchmark, strings.Join(ok, ", "))
		if len(failed) > 0 {
			fmt.Fprintf(&b, " (failed: %s)", strings.Join(failed, ", "))
		}
		b.WriteString("\n")
	}

	for _, f := range outcome.BuildFailures {
		fmt.Fprintf(&b, "✖ %s: build failed at %s\n", f.Benchmark, f.Step)
	}
	return strings.TrimRight(b.String(), "\n")
}

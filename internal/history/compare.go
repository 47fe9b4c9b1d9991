package history

import "fmt"

// Comparison is the change of one (benchmark, runtime) time between runs.
type Comparison struct {
	Benchmark string
	Runtime   string
	Prev      float64
	Curr      float64
	Diff      float64 // Percentage change, positive is slower
}

// Compare returns comparisons for (benchmark, runtime) pairs present in
// both runs, in the order of curr.
func Compare(prev, curr Run) []Comparison {
	type key struct{ benchmark, runtime string }
	prevMap := make(map[key]float64)
	for _, r := range prev.Results {
		prevMap[key{r.Benchmark, r.Runtime}] = r.Millis
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[key{c.Benchmark, c.Runtime}]
		if !ok {
			continue
		}
		comp := Comparison{
			Benchmark: c.Benchmark,
			Runtime:   c.Runtime,
			Prev:      p,
			Curr:      c.Millis,
		}
		if p > 0 {
			comp.Diff = (c.Millis - p) / p * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s/%s: %.2fms -> %.2fms (%+.2f%%)", c.Benchmark, c.Runtime, c.Prev, c.Curr, c.Diff)
}

package history

import (
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/benchmark"

	"github.com/google/uuid"
)

// Result is one available measurement of a stored run.
type Result struct {
	Benchmark string  `json:"benchmark"`
	Runtime   string  `json:"runtime"`
	Millis    float64 `json:"millis"`
}

// Run is a finished harness run as persisted in history.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Times     int       `json:"times"`
	Warmup    int       `json:"warmup"`
	Results   []Result  `json:"results"`
}

// NewRun flattens an outcome into a Run with a fresh ID. Unavailable
// measurements are not stored.
func NewRun(outcome *benchmark.Outcome, times, warmup int) Run {
	run := Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Times:     times,
		Warmup:    warmup,
	}
	if outcome == nil {
		return run
	}
	for _, res := range outcome.Results {
		for _, m := range res.Measurements {
			if !m.Available() {
				continue
			}
			run.Results = append(run.Results, Result{
				Benchmark: res.Benchmark,
				Runtime:   string(m.Runtime),
				Millis:    m.Millis(),
			})
		}
	}
	return run
}

// Store persists runs.
type Store interface {
	Save(run Run) error
	LoadLatest() (*Run, error)
	LoadAll() ([]Run, error)
	Close() error
}

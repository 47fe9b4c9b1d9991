package benchmark

import (
	"errors"
	"fmt"
	"time"
)

// ErrBuild marks a benchmark whose build pipeline failed. The harness
// skips that benchmark and keeps going.
var ErrBuild = errors.New("build failed")

// ErrValidation marks a run whose output began with ValidationMarker.
var ErrValidation = errors.New("result validation failed")

// ValidationMarker is the stdout prefix a benchmark program prints when its
// self-check fails.
const ValidationMarker = "Validate result error"

// Unit is one benchmark selected for building and running.
type Unit struct {
	Name       string
	SourcePath string
	JSPath     string
	// ExtraFlags are the registry's runtime options rendered against the
	// configuration, e.g. --gc-heap-size=40960000.
	ExtraFlags []string
}

// Measurement is the averaged outcome of sampling one runtime for one
// benchmark. Err is non-nil when any warm-up or timed run failed.
type Measurement struct {
	Runtime RuntimeID
	Elapsed time.Duration
	Err     error
}

// Available reports whether the measurement produced a time.
func (m Measurement) Available() bool {
	return m.Err == nil
}

// Millis returns the mean elapsed time in fractional milliseconds.
func (m Measurement) Millis() float64 {
	return float64(m.Elapsed) / float64(time.Millisecond)
}

// Result groups the measurements taken for one benchmark, in execution order.
type Result struct {
	Benchmark    string
	Measurements []Measurement
}

// BuildError records which step of a benchmark's build failed.
type BuildError struct {
	Benchmark string
	Step      string
	Err       error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s: step %q: %v", ErrBuild, e.Benchmark, e.Step, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrBuild) match any BuildError.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}

// Outcome is everything a harness run produced.
type Outcome struct {
	Results       []Result
	BuildFailures []*BuildError
}

func formatMillis(ms float64) string {
	return fmt.Sprintf("%.2fms", ms)
}

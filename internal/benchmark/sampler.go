package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"
)

// Sampler times a command repeatedly and averages the timed runs.
type Sampler struct {
	Exec    executor.Executor
	Printer *ui.Printer
	Metrics *metrics.Metrics
	Warmup  int
	Times   int
}

// Sample runs Warmup untimed and Times timed executions of cmd. Any failure
// ends sampling and yields an unavailable Measurement; it is reported here
// and never propagated.
func (s *Sampler) Sample(ctx context.Context, id RuntimeID, cmd executor.Command) Measurement {
	s.Printer.Command(cmd.String())

	for i := 0; i < s.Warmup; i++ {
		s.count("warmup")
		if _, err := s.Exec.Run(ctx, cmd); err != nil {
			return s.fail(id, cmd, fmt.Errorf("warm-up run %d: %w", i+1, err), "")
		}
	}

	times := s.Times
	if times < 1 {
		times = 1
	}

	var total time.Duration
	for i := 0; i < times; i++ {
		s.count("run")
		res, err := s.Exec.Run(ctx, cmd)
		if err != nil {
			return s.fail(id, cmd, err, "")
		}
		out := strings.TrimSpace(res.Stdout)
		if strings.HasPrefix(out, ValidationMarker) {
			return s.fail(id, cmd, fmt.Errorf("%w: %s", ErrValidation, out), out)
		}
		total += res.Elapsed
	}

	return Measurement{Runtime: id, Elapsed: total / time.Duration(times)}
}

func (s *Sampler) count(phase string) {
	if s.Metrics != nil {
		s.Metrics.CommandInvocations.WithLabelValues(phase).Inc()
	}
}

// fail prints the diagnostic block for a failed measurement.
func (s *Sampler) fail(id RuntimeID, cmd executor.Command, err error, stdout string) Measurement {
	exitCode := 0
	var exitErr *executor.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode
		if stdout == "" {
			stdout = exitErr.Stdout
		}
	}

	s.Printer.Println()
	if exitCode > 0 {
		s.Printer.Failure("Exit Code: %d", exitCode)
	}
	s.Printer.Failure("%s", err.Error())
	if stdout != "" {
		s.Printer.Failure("%s", stdout)
	}

	slog.Warn("Measurement failed", "runtime", string(id), "command", cmd.String(), "exit_code", exitCode, "error", err)
	return Measurement{Runtime: id, Err: err}
}

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"
)

// Harness drives discovery, building, sampling and cleanup for one run.
type Harness struct {
	Config    *config.RunConfiguration
	Toolchain *toolchain.Toolchain
	Registry  *Registry
	Exec      executor.Executor
	Printer   *ui.Printer
	Metrics   *metrics.Metrics
}

// Run processes every eligible benchmark sequentially. Build failures are
// collected in the Outcome rather than returned. The returned error is
// non-nil only for discovery failures or cancellation; the Outcome holds
// whatever finished before that.
func (h *Harness) Run(ctx context.Context) (*Outcome, error) {
	cfg := h.Config
	h.printOptions()

	discoverer := &Discoverer{Dir: cfg.BenchDir, Registry: h.Registry, Config: cfg, Printer: h.Printer}
	units, err := discoverer.Discover()
	if err != nil {
		return nil, err
	}

	pipeline := &Pipeline{
		Exec:      h.Exec,
		Toolchain: h.Toolchain,
		Dir:       cfg.BenchDir,
		OptLevel:  cfg.OptLevel,
		Metrics:   h.Metrics,
	}
	matrix := &Matrix{
		Sampler: &Sampler{
			Exec:    h.Exec,
			Printer: h.Printer,
			Metrics: h.Metrics,
			Warmup:  cfg.Warmup,
			Times:   cfg.Times,
		},
		Toolchain: h.Toolchain,
		Printer:   h.Printer,
		Metrics:   h.Metrics,
		Dir:       cfg.BenchDir,
		Filter:    cfg.Runtimes,
	}

	outcome := &Outcome{}
	var runErr error
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("run interrupted: %w", err)
			break
		}

		h.Printer.Benchmark(u.Name)
		h.Printer.Printf("Compiling %s benchmark:\n", u.Name)
		if err := pipeline.Build(ctx, u); err != nil {
			var buildErr *BuildError
			if !errors.As(err, &buildErr) {
				buildErr = &BuildError{Benchmark: u.Name, Err: err}
			}
			h.Printer.Failure("Build of %s failed at %s: %v", u.Name, buildErr.Step, buildErr.Err)
			slog.Error("Benchmark build failed", "benchmark", u.Name, "step", buildErr.Step, "error", buildErr.Err)
			outcome.BuildFailures = append(outcome.BuildFailures, buildErr)
			continue
		}

		outcome.Results = append(outcome.Results, Result{
			Benchmark:    u.Name,
			Measurements: matrix.Run(ctx, u),
		})
		if h.Metrics != nil {
			h.Metrics.BenchmarksProcessed.Inc()
		}
	}

	if cfg.Clean {
		if err := Clean(cfg.BenchDir); err != nil {
			slog.Warn("Cleanup incomplete", "error", err)
		}
	}
	return outcome, runErr
}

func (h *Harness) printOptions() {
	cfg := h.Config
	p := h.Printer

	p.Section("options")
	p.Printf("QJS_PATH: %s\n", h.Toolchain.Qjs)
	p.Printf("NODE_PATH: %s\n", h.Toolchain.Node)
	if cfg.Warmup > 0 {
		p.Printf("strategy: run %d times and get average (%d warm-up runs discarded)\n", cfg.Times, cfg.Warmup)
	} else {
		p.Printf("strategy: run %d times and get average\n", cfg.Times)
	}
	p.Printf("clean generated files: %t\n", cfg.Clean)

	for _, tok := range cfg.Unknown {
		p.Skip("Ignoring unrecognized option %s", tok)
		slog.Warn("Unrecognized option", "token", tok)
	}
	for _, name := range UnknownRuntimes(cfg.Runtimes.Names()) {
		p.Skip("Unknown runtime %s in --runtimes", name)
		slog.Warn("Unknown runtime in filter", "runtime", name)
	}

	p.Section("running")
}

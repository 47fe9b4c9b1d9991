package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/benchmark"
	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/history"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"
	"github.com/moonbit-community/Wasmnizer-ts/internal/notify"
	"github.com/moonbit-community/Wasmnizer-ts/internal/report"
	"github.com/moonbit-community/Wasmnizer-ts/internal/telemetry"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"
)

const pushJob = "runbench"

// Seams for tests.
var (
	resolveToolchain = toolchain.Resolve
	newExecutor      = func(timeout time.Duration) executor.Executor { return executor.New(timeout) }
	newNotifier      = func(cfg config.SlackConfig) notify.Notifier {
		return notify.NewSlackNotifier(cfg.Token, cfg.Channel)
	}
)

// run executes one full benchmark session and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(args)
	if errors.Is(err, config.ErrHelp) {
		config.PrintUsage(stdout, "runbench")
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := telemetry.InitLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		slog.Warn("Logging to console only", "error", err)
	}
	defer logger.Close()
	ui.ConfigureColor(cfg.NoColor)

	tc, err := resolveToolchain(cfg.Root)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	reg, err := benchmark.LoadRegistry(cfg.Registry)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printer := ui.NewPrinter(stdout)
	m := metrics.NewMetrics()
	h := &benchmark.Harness{
		Config:    cfg,
		Toolchain: tc,
		Registry:  reg,
		Exec:      newExecutor(cfg.Timeout),
		Printer:   printer,
		Metrics:   m,
	}

	start := time.Now()
	outcome, runErr := h.Run(ctx)
	if outcome == nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
	slog.Info("Benchmark run finished",
		"benchmarks", len(outcome.Results),
		"build_failures", len(outcome.BuildFailures),
		"duration", time.Since(start).String())

	printer.Section("results")
	report.Render(stdout, report.NewRecords(outcome.Results), outcome.BuildFailures)

	record := history.NewRun(outcome, cfg.Times, cfg.Warmup)
	if cfg.History.Path != "" {
		if err := saveHistory(cfg, printer, record); err != nil {
			slog.Warn("Failed to record run history", "error", err)
			printer.Failure("history: %v", err)
		}
	}

	// An interrupted run still publishes what it finished.
	pubCtx := context.WithoutCancel(ctx)
	if cfg.Pushgateway != "" {
		if err := m.Push(pubCtx, cfg.Pushgateway, pushJob, record.ID); err != nil {
			slog.Warn("Failed to push metrics", "url", cfg.Pushgateway, "error", err)
		}
	}
	if cfg.Slack.Enabled() {
		if err := newNotifier(cfg.Slack).Notify(pubCtx, notify.Summary(outcome)); err != nil {
			slog.Warn("Failed to post Slack summary", "channel", cfg.Slack.Channel, "error", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
	if len(outcome.BuildFailures) > 0 {
		return 1
	}
	return 0
}

// saveHistory stores the run, first printing how it compares to the latest
// stored run when asked to.
func saveHistory(cfg *config.RunConfiguration, printer *ui.Printer, record history.Run) error {
	store, err := history.NewStore(history.StoreConfig{Type: cfg.History.Type, Location: cfg.History.Path})
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Compare {
		prev, err := store.LoadLatest()
		if err != nil {
			return err
		}
		printer.Section("comparison")
		if prev == nil {
			printer.Println("No previous run to compare against.")
		} else {
			comps := history.Compare(*prev, record)
			if len(comps) == 0 {
				printer.Println("No common measurements with the previous run.")
			}
			for _, c := range comps {
				printer.Println(c.String())
			}
		}
	}

	if err := store.Save(record); err != nil {
		return err
	}
	printer.Success("Saved run %s to %s history.", record.ID, orJSON(cfg.History.Type))
	return nil
}

func orJSON(t string) string {
	if t == "" {
		return "json"
	}
	return t
}

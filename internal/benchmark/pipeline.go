package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/moonbit-community/Wasmnizer-ts/internal/executor"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
)

// BuildLog is the file in the benchmark directory that collects the
// stdout of noisy build steps. Each such step truncates it.
const BuildLog = "tmp.txt"

// Step is one command of the build pipeline.
type Step struct {
	Name    string
	Command executor.Command
	// Logged steps also copy stdout into BuildLog.
	Logged bool
}

// Pipeline compiles a benchmark through every toolchain.
type Pipeline struct {
	Exec      executor.Executor
	Toolchain *toolchain.Toolchain
	Dir       string
	OptLevel  int
	Metrics   *metrics.Metrics
}

// Steps lists the fixed build sequence for a unit.
func (p *Pipeline) Steps(u Unit) []Step {
	a := ArtifactsFor(u.Name)
	tc := p.Toolchain
	wamrc := func(out, in string) []string {
		return []string{"--enable-gc", "--size-level=0", "-o", out, in}
	}

	steps := []Step{
		{Name: "ts2wasm", Command: executor.Command{Name: tc.Node, Args: []string{tc.Ts2wasm, u.SourcePath, "--opt", strconv.Itoa(p.OptLevel), "--output", a.Wasm}}, Logged: true},
		{Name: "wasm-tools print", Command: executor.Command{Name: tc.WasmTools, Args: []string{"print", a.Wasm, "-o", a.Wat}}},
		{Name: "wasm-opt", Command: executor.Command{Name: tc.WasmOpt, Args: []string{"-all", "-O3", "-o", a.Wasm, a.Wasm}}},
		{Name: "wamrc", Command: executor.Command{Name: tc.Wamrc, Args: wamrc(a.AOT, a.Wasm)}, Logged: true},
		{Name: "moon clean", Command: executor.Command{Name: tc.Moon, Args: []string{"clean", "--source-dir", u.Name}}, Logged: true},
		{Name: "moon build wasm-gc", Command: executor.Command{Name: tc.Moon, Args: []string{"build", "--source-dir", u.Name, "--target", "wasm-gc"}}, Logged: true},
		{Name: "moon build wasm", Command: executor.Command{Name: tc.Moon, Args: []string{"build", "--source-dir", u.Name, "--target", "wasm"}}, Logged: true},
		{Name: "moon build wat", Command: executor.Command{Name: tc.Moon, Args: []string{"build", "--source-dir", u.Name, "--target", "wasm-gc", "--output-wat"}}, Logged: true},
		{Name: "wasm-opt wasm-gc", Command: executor.Command{Name: tc.WasmOpt, Args: []string{"-all", "-O3", a.GCWasm, "-o", a.GCWasm}}},
		{Name: "wasm-opt wasm", Command: executor.Command{Name: tc.WasmOpt, Args: []string{"-all", "-O3", a.Wasm1, "-o", a.Wasm1}}},
		{Name: "wamrc wasm-gc", Command: executor.Command{Name: tc.Wamrc, Args: wamrc(a.GCAOT, a.GCWasm)}, Logged: true},
		{Name: "wamrc wasm", Command: executor.Command{Name: tc.Wamrc, Args: wamrc(a.Wasm1AOT, a.Wasm1)}, Logged: true},
	}
	for i := range steps {
		steps[i].Command.Dir = p.Dir
	}
	return steps
}

// Build runs every step in order and stops at the first failure, which is
// returned as a *BuildError.
func (p *Pipeline) Build(ctx context.Context, u Unit) error {
	for _, step := range p.Steps(u) {
		if err := p.runStep(ctx, step); err != nil {
			if p.Metrics != nil {
				p.Metrics.BuildFailures.Inc()
			}
			return &BuildError{Benchmark: u.Name, Step: step.Name, Err: err}
		}
	}
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step) error {
	cmd := step.Command
	if step.Logged {
		f, err := os.Create(filepath.Join(p.Dir, BuildLog))
		if err != nil {
			return fmt.Errorf("failed to open build log: %w", err)
		}
		defer f.Close()
		cmd.Stdout = f
	}

	slog.Debug("Running build step", "step", step.Name, "command", cmd.String())
	start := time.Now()
	_, err := p.Exec.Run(ctx, cmd)
	if p.Metrics != nil {
		p.Metrics.ObserveBuildStep(step.Name, time.Since(start))
	}
	return err
}

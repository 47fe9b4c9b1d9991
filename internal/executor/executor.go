package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Stdout, if set, receives the child's standard output in addition to
	// the captured buffer.
	Stdout io.Writer
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
}

// ExitError is returned when the child exits with a non-zero status or is
// killed because the timeout expired.
type ExitError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Executor runs external commands synchronously.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// waitDelay bounds how long Run waits for the output pipes to close after
// the child was killed.
const waitDelay = time.Second

// OSExecutor runs commands as child processes of the harness.
type OSExecutor struct {
	// Timeout bounds every command. Zero means no limit.
	Timeout time.Duration
}

// New returns an OSExecutor with the given per-command timeout.
func New(timeout time.Duration) *OSExecutor {
	return &OSExecutor{Timeout: timeout}
}

// Run blocks until the child terminates. Elapsed covers process start to
// process exit.
func (e *OSExecutor) Run(ctx context.Context, c Command) (Result, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	var outBuf, errBuf bytes.Buffer
	if c.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, c.Stdout)
	} else {
		cmd.Stdout = &outBuf
	}
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Elapsed:  elapsed,
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		exitErr := &ExitError{
			Command:  c.String(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			Err:      err,
		}
		if e.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			exitErr.Err = fmt.Errorf("timed out after %s: %w", e.Timeout, ctx.Err())
		}
		return res, exitErr
	}
	return res, nil
}

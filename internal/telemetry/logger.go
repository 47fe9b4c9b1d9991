package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// AppName is attached to every record.
const AppName = "runbench"

// Options selects the log level and destinations.
type Options struct {
	Debug   bool
	File    string
	Console io.Writer // nil disables console output
}

// Logger is a configured slog.Logger plus the file it may hold open.
type Logger struct {
	*slog.Logger
	file *os.File
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a JSON logger for opts. If the log file cannot be opened the
// console logger is still returned together with the error.
func New(opts Options) (*Logger, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var (
		sinks   []slog.Handler
		file    *os.File
		fileErr error
	)
	if opts.Console != nil {
		sinks = append(sinks, slog.NewJSONHandler(opts.Console, hopts))
	}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fileErr = fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		} else {
			file = f
			sinks = append(sinks, slog.NewJSONHandler(f, hopts))
		}
	}

	var h slog.Handler
	switch len(sinks) {
	case 0:
		h = slog.NewJSONHandler(io.Discard, hopts)
	case 1:
		h = sinks[0]
	default:
		h = tee(sinks)
	}

	return &Logger{Logger: slog.New(h).With("app", AppName), file: file}, fileErr
}

// InitLogger installs a stderr logger as the slog default. Stdout is kept
// for the progress stream and the report.
func InitLogger(debug bool, logFile string) (*Logger, error) {
	l, err := New(Options{Debug: debug, File: logFile, Console: os.Stderr})
	slog.SetDefault(l.Logger)
	return l, err
}

// teeHandler fans a record out to every handler that accepts its level.
type teeHandler []slog.Handler

func tee(hs []slog.Handler) teeHandler {
	return teeHandler(hs)
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

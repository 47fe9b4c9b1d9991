package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. RUNBENCH_TIMES=5.
const EnvPrefix = "RUNBENCH"

var helpTokens = map[string]bool{
	"--help": true,
	"-help":  true,
	"help":   true,
	"h":      true,
	"-h":     true,
}

// newFlagSet declares every recognised option with its default.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("runbench", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.String("no-clean", "", "keep generated artifacts after the run (any truthy value)")
	fs.Lookup("no-clean").NoOptDefVal = "true"
	fs.Int("times", DefaultTimes, "sample count per measurement")
	fs.Int("warmup", DefaultWarmup, "warm-up runs discarded before sampling")
	fs.Int("stack-size", DefaultStackSize, "stack size passed to stack-sensitive runtimes")
	fs.Int("gc-heap", DefaultGCHeap, "heap size passed to GC-enabled runtimes")
	fs.String("benchmarks", "", "comma-separated benchmark allow-list")
	fs.String("runtimes", "", "comma-separated runtime allow-list")

	fs.String("timeout", "0", "per-command timeout (duration or seconds, 0 = none)")
	fs.String("dir", ".", "benchmark directory")
	fs.String("root", "", "install tree holding the compiler and runtimes (default <dir>/../..)")
	fs.Int("opt-level", DefaultOptLevel, "ts2wasm optimization level")
	fs.String("registry", "", "YAML file overriding the built-in benchmark registry")
	fs.String("config", "", "config file (default ./runbench.yaml if present)")

	fs.Bool("verbose", false, "enable debug logging")
	fs.String("log-file", "", "also write logs to this file")
	fs.Bool("no-color", false, "disable coloured output")

	fs.String("history", "", "store finished runs at this path or DSN")
	fs.String("history-type", "json", "history backend: json, sqlite or postgres")
	fs.Bool("compare", false, "compare against the latest stored run")
	fs.String("pushgateway", "", "Prometheus Pushgateway URL")
	fs.String("slack-channel", "", "post a run summary to this Slack channel")
	return fs
}

// IsHelp reports whether any token asks for usage.
func IsHelp(tokens []string) bool {
	for _, tok := range tokens {
		if helpTokens[tok] {
			return true
		}
	}
	return false
}

// splitTokens separates tokens that name a declared option from the rest.
// Only "--name" forms can match; single-dash tokens are always unknown. A
// known non-boolean option written without "=" takes the next token as its
// value.
func splitTokens(fs *pflag.FlagSet, tokens []string) (known, unknown []string) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "--") {
			unknown = append(unknown, tok)
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		f := fs.Lookup(name)
		if f == nil {
			unknown = append(unknown, tok)
			continue
		}
		known = append(known, tok)
		if !hasValue && f.NoOptDefVal == "" && i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
			known = append(known, tokens[i+1])
			i++
		}
	}
	return known, unknown
}

// Resolve turns key=value tokens into a validated RunConfiguration.
// Precedence: tokens > RUNBENCH_* environment > config file > defaults.
func Resolve(tokens []string) (*RunConfiguration, error) {
	if IsHelp(tokens) {
		return nil, ErrHelp
	}

	fs := newFlagSet()
	known, unknown := splitTokens(fs, tokens)
	if err := fs.Parse(known); err != nil {
		return nil, fmt.Errorf("invalid option: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind options: %w", err)
	}
	_ = v.BindEnv("slack-token", "SLACK_BOT_USER_TOKEN")

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg, err := build(v)
	if err != nil {
		return nil, err
	}
	cfg.Unknown = unknown

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigName("runbench")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func build(v *viper.Viper) (*RunConfiguration, error) {
	var errs []string
	intOpt := func(key string) int {
		raw := strings.TrimSpace(v.GetString(key))
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("--%s must be a base-10 integer, got: %q", key, raw))
		}
		return n
	}
	// Lists come from tokens and env as "a,b" and from a config file as
	// either "a,b" or a YAML sequence.
	setOpt := func(key string) Set {
		switch raw := v.Get(key).(type) {
		case nil:
			return nil
		case string:
			return NewSet(raw)
		case []string:
			return NewSet(strings.Join(raw, ","))
		case []any:
			items := make([]string, 0, len(raw))
			for _, item := range raw {
				s, ok := item.(string)
				if !ok {
					errs = append(errs, fmt.Sprintf("--%s entries must be names, got: %v", key, item))
					return nil
				}
				items = append(items, s)
			}
			return NewSet(strings.Join(items, ","))
		default:
			errs = append(errs, fmt.Sprintf("--%s must be a comma-separated list, got: %v", key, raw))
			return nil
		}
	}

	cfg := &RunConfiguration{
		Times:      intOpt("times"),
		Warmup:     intOpt("warmup"),
		StackSize:  intOpt("stack-size"),
		GCHeap:     intOpt("gc-heap"),
		OptLevel:   intOpt("opt-level"),
		Clean:      !truthy(v.GetString("no-clean")),
		Benchmarks: setOpt("benchmarks"),
		Runtimes:   setOpt("runtimes"),
		BenchDir:   v.GetString("dir"),
		Root:       v.GetString("root"),
		Registry:   v.GetString("registry"),
		Verbose:    v.GetBool("verbose"),
		LogFile:    v.GetString("log-file"),
		NoColor:    v.GetBool("no-color"),
		History: HistoryConfig{
			Type: strings.ToLower(v.GetString("history-type")),
			Path: v.GetString("history"),
		},
		Compare:     v.GetBool("compare"),
		Pushgateway: v.GetString("pushgateway"),
		Slack: SlackConfig{
			Channel: v.GetString("slack-channel"),
			Token:   v.GetString("slack-token"),
		},
	}

	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.Timeout = timeout

	if cfg.Root == "" && cfg.BenchDir != "" {
		cfg.Root = filepath.Join(cfg.BenchDir, "..", "..")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return cfg, nil
}

// truthy treats any value except an explicit false literal as true.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return true
}

// parseTimeout accepts a Go duration ("90s") or whole seconds ("90").
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("--timeout must be a duration or whole seconds, got: %q", raw)
	}
	return d, nil
}

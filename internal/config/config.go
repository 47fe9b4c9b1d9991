package config

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrHelp is returned by Resolve when a help token is present.
var ErrHelp = errors.New("help requested")

// Defaults mirrored by the flag schema.
const (
	DefaultTimes     = 1
	DefaultWarmup    = 0
	DefaultStackSize = 40960000
	DefaultGCHeap    = 40960000
	DefaultOptLevel  = 3
)

// Set is a name filter. A nil Set means "no filter configured".
type Set map[string]struct{}

// NewSet splits a comma-separated list. An empty list yields nil.
func NewSet(list string) Set {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	s := make(Set)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			s[item] = struct{}{}
		}
	}
	return s
}

// Allows reports whether name passes the filter.
func (s Set) Allows(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

// Names returns the members in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HistoryConfig selects where finished runs are stored.
type HistoryConfig struct {
	Type string `validate:"omitempty,oneof=json sqlite postgres"`
	Path string
}

// SlackConfig enables a summary post after the run.
type SlackConfig struct {
	Channel string
	Token   string
}

// Enabled reports whether both a channel and a token are present.
func (s SlackConfig) Enabled() bool {
	return s.Channel != "" && s.Token != ""
}

// RunConfiguration is the immutable result of Resolve.
type RunConfiguration struct {
	Times      int `validate:"gte=1"`
	Warmup     int `validate:"gte=0"`
	StackSize  int `validate:"gt=0"`
	GCHeap     int `validate:"gt=0"`
	Clean      bool
	Benchmarks Set
	Runtimes   Set

	Timeout  time.Duration `validate:"gte=0"`
	BenchDir string        `validate:"required"`
	Root     string        `validate:"required"`
	OptLevel int           `validate:"gte=0,lte=3"`
	Registry string

	Verbose bool
	LogFile string
	NoColor bool

	History     HistoryConfig
	Compare     bool
	Pushgateway string `validate:"omitempty,url"`
	Slack       SlackConfig

	// Unknown holds tokens that matched no option.
	Unknown []string
}

// StackSizeOption renders the stack-size hint for stack-sensitive runtimes.
func (c *RunConfiguration) StackSizeOption() string {
	return "--stack-size=" + strconv.Itoa(c.StackSize)
}

// GCHeapOption renders the heap-size hint for GC-enabled runtimes.
func (c *RunConfiguration) GCHeapOption() string {
	return "--gc-heap-size=" + strconv.Itoa(c.GCHeap)
}

package benchmark

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultRegistry []byte

// Runtime option keys accepted in the registry.
const (
	OptionGCHeap    = "gc-heap"
	OptionStackSize = "stack-size"
)

// Entry holds the static settings for one benchmark.
type Entry struct {
	Skip           bool     `yaml:"skip"`
	RuntimeOptions []string `yaml:"runtime_options"`
}

// Registry maps benchmark names to their settings. Names absent from the
// registry run with no extra options.
type Registry struct {
	Benchmarks map[string]Entry `yaml:"benchmarks"`
}

// LoadRegistry parses the registry at path, or the built-in one when path
// is empty.
func LoadRegistry(path string) (*Registry, error) {
	data := defaultRegistry
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
		}
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes registry YAML and rejects unknown runtime options.
func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if reg.Benchmarks == nil {
		reg.Benchmarks = map[string]Entry{}
	}
	for name, entry := range reg.Benchmarks {
		for _, opt := range entry.RuntimeOptions {
			if opt != OptionGCHeap && opt != OptionStackSize {
				return nil, fmt.Errorf("registry entry %s: unknown runtime option %q", name, opt)
			}
		}
	}
	return &reg, nil
}

// Lookup returns the entry for name and whether one exists.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.Benchmarks[name]
	return e, ok
}

// Flags renders the entry's runtime options in declared order.
func (e Entry) Flags(cfg *config.RunConfiguration) []string {
	if len(e.RuntimeOptions) == 0 {
		return nil
	}
	flags := make([]string, 0, len(e.RuntimeOptions))
	for _, opt := range e.RuntimeOptions {
		switch opt {
		case OptionGCHeap:
			flags = append(flags, cfg.GCHeapOption())
		case OptionStackSize:
			flags = append(flags, cfg.StackSizeOption())
		}
	}
	return flags
}

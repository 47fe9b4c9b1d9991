package benchmark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"
)

// Discoverer selects the benchmarks to run from a directory listing.
type Discoverer struct {
	Dir      string
	Registry *Registry
	Config   *config.RunConfiguration
	Printer  *ui.Printer
}

// Discover returns eligible benchmarks in directory order. A benchmark is
// eligible when name.ts has a name.js sibling, the registry does not skip
// it and it passes the --benchmarks filter.
func (d *Discoverer) Discover() ([]Unit, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark directory %s: %w", d.Dir, err)
	}

	var units []Unit
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".ts" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".ts")
		jsFile := name + ".js"

		if _, err := os.Stat(filepath.Join(d.Dir, jsFile)); err != nil {
			slog.Debug("Benchmark has no JavaScript counterpart", "benchmark", name, "expected", jsFile)
			continue
		}

		regEntry, _ := d.Registry.Lookup(name)
		if regEntry.Skip {
			d.Printer.Skip("Skip %s benchmark.", name)
			continue
		}
		if !d.Config.Benchmarks.Allows(name) {
			d.Printer.Skip("Skip %s benchmark due to argument filter.", name)
			continue
		}

		units = append(units, Unit{
			Name:       name,
			SourcePath: entry.Name(),
			JSPath:     jsFile,
			ExtraFlags: regEntry.Flags(d.Config),
		})
	}
	return units, nil
}

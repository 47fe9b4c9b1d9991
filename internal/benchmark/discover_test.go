package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "quicksort", "fibonacci", "lonely!", "skipped")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "fibonacci_dir.ts"), 0755))

	reg, err := ParseRegistry([]byte(`
benchmarks:
  quicksort:
    runtime_options: [stack-size, gc-heap]
  skipped:
    skip: true
`))
	require.NoError(t, err)

	printer, out := newPrinter()
	cfg := testConfig(t, dir)
	d := &Discoverer{Dir: dir, Registry: reg, Config: cfg, Printer: printer}

	units, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "fibonacci", units[0].Name)
	assert.Equal(t, "fibonacci.ts", units[0].SourcePath)
	assert.Equal(t, "fibonacci.js", units[0].JSPath)
	assert.Empty(t, units[0].ExtraFlags)

	assert.Equal(t, "quicksort", units[1].Name)
	assert.Equal(t, []string{"--stack-size=40960000", "--gc-heap-size=40960000"}, units[1].ExtraFlags)

	assert.Contains(t, out.String(), "Skip skipped benchmark.")
	assert.NotContains(t, out.String(), "lonely")
}

func TestDiscover_Filter(t *testing.T) {
	dir := t.TempDir()
	writeBenchmarks(t, dir, "a", "b")

	printer, out := newPrinter()
	cfg := testConfig(t, dir)
	cfg.Benchmarks = config.NewSet("b")
	d := &Discoverer{Dir: dir, Registry: &Registry{}, Config: cfg, Printer: printer}

	units, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "b", units[0].Name)
	assert.Contains(t, out.String(), "Skip a benchmark due to argument filter.")
}

func TestDiscover_MissingDir(t *testing.T) {
	printer, _ := newPrinter()
	dir := filepath.Join(t.TempDir(), "nope")
	d := &Discoverer{Dir: dir, Registry: &Registry{}, Config: testConfig(t, dir), Printer: printer}

	_, err := d.Discover()
	assert.Error(t, err)
}

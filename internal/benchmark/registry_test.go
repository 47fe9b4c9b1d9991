package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry_Default(t *testing.T) {
	reg, err := LoadRegistry("")
	require.NoError(t, err)

	cfg := &config.RunConfiguration{StackSize: 100, GCHeap: 200}

	for _, name := range []string{"merkletrees", "mandelbrot", "mandelbrot_i32", "binarytrees_class", "binarytrees_interface"} {
		e, ok := reg.Lookup(name)
		require.True(t, ok, name)
		assert.False(t, e.Skip)
		assert.Equal(t, []string{"--gc-heap-size=200"}, e.Flags(cfg), name)
	}
	for _, name := range []string{"quicksort", "quicksort_float"} {
		e, ok := reg.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, []string{"--stack-size=100", "--gc-heap-size=200"}, e.Flags(cfg), name)
	}

	e, ok := reg.Lookup("fibonacci")
	assert.False(t, ok)
	assert.Nil(t, e.Flags(cfg))
}

func TestParseRegistry(t *testing.T) {
	reg, err := ParseRegistry([]byte("benchmarks:\n  slow:\n    skip: true\n"))
	require.NoError(t, err)
	e, ok := reg.Lookup("slow")
	require.True(t, ok)
	assert.True(t, e.Skip)

	_, err = ParseRegistry([]byte("benchmarks:\n  x:\n    runtime_options: [heap]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown runtime option "heap"`)

	_, err = ParseRegistry([]byte("benchmarks: [oops"))
	assert.Error(t, err)

	reg, err = ParseRegistry(nil)
	require.NoError(t, err)
	assert.Empty(t, reg.Benchmarks)
}

func TestLoadRegistry_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("benchmarks:\n  mandelbrot:\n    runtime_options: [stack-size]\n"), 0644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	e, _ := reg.Lookup("mandelbrot")
	assert.Equal(t, []string{"--stack-size=7"}, e.Flags(&config.RunConfiguration{StackSize: 7}))

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

package benchmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// cleanPatterns are removed from the benchmark directory after a run.
// MoonBit target directories are left alone.
var cleanPatterns = []string{"*.wasm", "*.aot", BuildLog}

// Clean deletes generated artifacts from dir. Missing files are not an
// error; every removal failure is reported.
func Clean(dir string) error {
	var errs []error
	for _, pattern := range cleanPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("bad clean pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to clean %s: %w", dir, errors.Join(errs...))
	}
	return nil
}

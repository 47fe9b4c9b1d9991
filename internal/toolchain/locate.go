package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when every strategy for an executable failed.
var ErrNotFound = errors.New("executable not found")

// Function variables for mocking
var (
	execLookPath = exec.LookPath
	lookupEnv    = os.LookupEnv
	fileExists   = func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
)

// Strategy resolves an executable name to a path, or reports why it could not.
type Strategy interface {
	Name() string
	Find() (string, error)
}

// LookPath searches $PATH.
type LookPath struct{ Binary string }

func (s LookPath) Name() string { return "PATH lookup of " + s.Binary }

func (s LookPath) Find() (string, error) {
	return execLookPath(s.Binary)
}

// Env takes the path from an environment variable verbatim.
type Env struct{ Var string }

func (s Env) Name() string { return "$" + s.Var }

func (s Env) Find() (string, error) {
	if v, ok := lookupEnv(s.Var); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return "", fmt.Errorf("%s is not set", s.Var)
}

// File accepts a fixed path when a regular file exists there.
type File struct{ Path string }

func (s File) Name() string { return s.Path }

func (s File) Find() (string, error) {
	if fileExists(s.Path) {
		return s.Path, nil
	}
	return "", fmt.Errorf("%s does not exist", s.Path)
}

// Locate tries each strategy in order and returns the first hit. When all
// fail the error names every strategy tried.
func Locate(name string, strategies ...Strategy) (string, error) {
	var tried []string
	for _, s := range strategies {
		path, err := s.Find()
		if err == nil && path != "" {
			return path, nil
		}
		tried = append(tried, s.Name())
	}
	return "", fmt.Errorf("%w: %s (tried %s)", ErrNotFound, name, strings.Join(tried, ", "))
}

// QjsStrategies is the discovery chain for the QuickJS interpreter.
func QjsStrategies(root string) []Strategy {
	return []Strategy{
		LookPath{Binary: "qjs"},
		Env{Var: "QJS_PATH"},
		File{Path: "/usr/local/bin/qjs"},
		File{Path: filepath.Join(root, "runtime-library", "deps", "quickjs", "qjs")},
	}
}

// NodeStrategies is the discovery chain for Node.js. There is no bundled node.
func NodeStrategies() []Strategy {
	return []Strategy{
		LookPath{Binary: "node"},
		Env{Var: "NODE_PATH"},
		File{Path: "/usr/local/bin/node"},
	}
}

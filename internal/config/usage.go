package config

import (
	"fmt"
	"io"
)

// PrintUsage writes the option reference and an example invocation.
func PrintUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options]\n", prog)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, newFlagSet().FlagUsages())
	fmt.Fprintln(w, "Note:")
	fmt.Fprintln(w, "  A bare --no-clean, or any value other than false/0, keeps generated artifacts.")
	fmt.Fprintln(w, "  --no-clean=false and --no-clean=0 leave cleanup on.")
	fmt.Fprintln(w, "Example:")
	fmt.Fprintf(w, "  %s --no-clean=true --times=10 --gc-heap=40960000 --benchmarks=mandelbrot,binarytrees_class --runtimes=wamr-interp,qjs\n", prog)
}

package ui

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes the human-facing progress stream of a run.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Section prints a banner such as "===== options =====".
func (p *Printer) Section(title string) {
	bar := strings.Repeat("=", 24)
	fmt.Fprintln(p.out, sectionStyle.Render(fmt.Sprintf("%s %s %s", bar, title, bar)))
}

// Benchmark prints the header that opens one benchmark's block.
func (p *Printer) Benchmark(name string) {
	bar := strings.Repeat("#", 19)
	fmt.Fprintln(p.out, benchmarkStyle.Render(fmt.Sprintf("%s %s %s", bar, name, bar)))
}

// Skip prints an informational skip notice.
func (p *Printer) Skip(format string, args ...any) {
	fmt.Fprintln(p.out, skipStyle.Render(fmt.Sprintf(format, args...)))
}

// Failure prints a diagnostic line in red.
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a line in green.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Command echoes a command line before it is sampled.
func (p *Printer) Command(cmd string) {
	fmt.Fprintf(p.out, "\n\t%s\n", commandStyle.Render(cmd))
}

// Printf writes unstyled text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes an unstyled line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

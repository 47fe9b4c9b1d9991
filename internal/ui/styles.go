package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used by the harness output.

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")) // Yellow

	benchmarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")). // Cyan
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")) // Red

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")) // Green

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Gray

	// Report table
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// ConfigureColor drops colour output when asked to, when NO_COLOR is set,
// or when stdout is not a terminal.
func ConfigureColor(noColor bool) {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if noColor || termenv.EnvNoColor() || !tty {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

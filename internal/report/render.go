package report

import (
	"fmt"
	"io"

	"github.com/moonbit-community/Wasmnizer-ts/internal/benchmark"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// column is one report column: a label and a cell function.
type column struct {
	label string
	cell  func(Record) (string, bool)
}

func allColumns() []column {
	cols := make([]column, 0, len(TimeColumns)+len(Ratios))
	for _, id := range TimeColumns {
		rt, _ := benchmark.LookupRuntime(id)
		cols = append(cols, column{
			label: rt.Label,
			cell: func(r Record) (string, bool) {
				v, ok := r.Time(id)
				if !ok {
					return "", false
				}
				return fmt.Sprintf("%.2fms", v), true
			},
		})
	}
	for _, q := range Ratios {
		cols = append(cols, column{
			label: q.Label,
			cell: func(r Record) (string, bool) {
				v, ok := q.Value(r)
				if !ok {
					return "", false
				}
				return fmt.Sprintf("%.2f", v), true
			},
		})
	}
	return cols
}

// Table returns the header and rows. Only columns with a value in at least
// one record are included; cells without a value are blank.
func Table(records []Record) ([]string, [][]string) {
	cols := allColumns()
	present := make([]bool, len(cols))
	cells := make([][]string, len(records))

	for i, rec := range records {
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			if v, ok := c.cell(rec); ok {
				cells[i][j] = v
				present[j] = true
			}
		}
	}

	headers := []string{"benchmark"}
	for j, c := range cols {
		if present[j] {
			headers = append(headers, c.label)
		}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := []string{rec.Benchmark}
		for j := range cols {
			if present[j] {
				row = append(row, cells[i][j])
			}
		}
		rows[i] = row
	}
	return headers, rows
}

// Render writes the results table followed by any build failures.
func Render(w io.Writer, records []Record, failures []*benchmark.BuildError) {
	headers, rows := Table(records)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.TableHeaderStyle
			}
			return ui.TableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(w, t.String())

	if len(failures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Build failures:")
		for _, f := range failures {
			fmt.Fprintf(w, "  %s (step %s): %v\n", f.Benchmark, f.Step, f.Err)
		}
	}
}

// Package table renders fixed-width plain-text tables for terminal and
// file output. Widths are measured in display cells so wide runes align.
package table

import (
	"fmt"
	"io"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Table is a simple column/row dataset with a renderer.
type Table struct {
	columns []string
	rows    [][]string
}

// New returns a table with the given column headers.
func New(columns ...string) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Short rows are padded with empty cells; extra
// cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Options controls rendering.
type Options struct {
	// Header renders the column names and a rule line before the rows.
	Header bool
}

// Render writes the table. Cells are left-aligned and separated by two
// spaces; each column is as wide as its widest cell.
func (t *Table) Render(w io.Writer, opts Options) error {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		if opts.Header {
			widths[i] = runewidth.StringWidth(c)
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	if opts.Header {
		if err := t.writeRow(w, t.columns, widths); err != nil {
			return err
		}
		rule := make([]string, len(t.columns))
		for i, width := range widths {
			rule[i] = strings.Repeat("-", width)
		}
		if err := t.writeRow(w, rule, widths); err != nil {
			return err
		}
	}
	for _, row := range t.rows {
		if err := t.writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) writeRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		// Pad all but the last column to keep lines free of
		// trailing spaces.
		if i < len(cells)-1 {
			if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

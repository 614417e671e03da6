package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/flrw/cmd/catalog"
)

// Output is the result of running a mode. Text output comes from Lines;
// json and yaml output encode the value itself.
type Output interface {
	Lines() []string
}

// Table is a block of columns evaluated at a list of redshifts.
type Table struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Units   []string    `json:"units" yaml:"units"`
	Rows    [][]float64 `json:"rows" yaml:"rows,flow"`
}

var _ Output = &Table{}

// NewTable creates a table from the rows of evaluated columns.
func NewTable(cols []Column, rows [][]float64) *Table {
	t := &Table{Rows: rows}
	for i := range cols {
		t.Columns = append(t.Columns, cols[i].Name)
		t.Units = append(t.Units, cols[i].Units)
	}
	return t
}

// Lines returns the table as a header comment followed by aligned rows.
func (t *Table) Lines() []string {
	cols := make([][]float64, len(t.Columns))
	for j := range cols {
		cols[j] = make([]float64, len(t.Rows))
		for i := range t.Rows {
			cols[j][i] = t.Rows[i][j]
		}
	}
	return append(
		[]string{catalog.CommentString(t.Columns)}, catalog.FormatCols(cols)...,
	)
}

// WriteOutput writes out to w in the given format.
func WriteOutput(w io.Writer, format string, out Output) error {
	switch format {
	case "", "text":
		for _, line := range out.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unrecognized output format '%s'", format)
}

package frame

import (
	"fmt"

	"github.com/asterion-dev/pipekit/data"
)

// Table is row/column shaped numeric data, the payload type for detection
// descriptors and per-tile statistics.
type Table struct {
	cols []string
	rows [][]float64
}

var _ data.Tabular = (*Table)(nil)

// NewTable creates an empty table with the given column names.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{cols: cols}
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Append adds one row. The number of values must match the column count.
func (t *Table) Append(values ...float64) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("table row has %d values, want %d", len(values), len(t.cols))
	}
	row := make([]float64, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	out := make([]float64, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Value returns the cell at row i under the named column.
func (t *Table) Value(i int, column string) (float64, bool) {
	for c, name := range t.cols {
		if name == column {
			return t.rows[i][c], true
		}
	}
	return 0, false
}

func (t *Table) String() string {
	return fmt.Sprintf("table %d rows x %d columns", len(t.rows), len(t.cols))
}

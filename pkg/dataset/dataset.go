package dataset

import (
	"strconv"
	"strings"
)

// Cell is one logical tabular value: null, numeric, or text. Numerics are
// canonicalized to compact decimal strings so the profiler sees one
// representation regardless of the source format.
type Cell struct {
	value  string
	isNull bool
}

// Null returns the null cell.
func Null() Cell {
	return Cell{isNull: true}
}

// Text returns a text cell holding s verbatim.
func Text(s string) Cell {
	return Cell{value: s}
}

// Number returns a numeric cell holding the compact decimal rendering of f.
func Number(f float64) Cell {
	return Cell{value: strconv.FormatFloat(f, 'f', -1, 64)}
}

// IsNull reports whether the cell carries no value.
func (c Cell) IsNull() bool {
	return c.isNull
}

// IsEmpty reports whether the cell is a present but blank string.
func (c Cell) IsEmpty() bool {
	return !c.isNull && strings.TrimSpace(c.value) == ""
}

// String returns the cell's value, or "" for null cells.
func (c Cell) String() string {
	if c.isNull {
		return ""
	}
	return c.value
}

// Column is one named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Dataset is an ordered collection of equally-long columns. It is the logical
// input to the analysis pipeline; source file formats never reach the core.
type Dataset struct {
	Name    string
	Columns []Column
}

// RowCount returns the number of rows, taken from the longest column.
func (d *Dataset) RowCount() int {
	rows := 0
	for _, col := range d.Columns {
		if len(col.Cells) > rows {
			rows = len(col.Cells)
		}
	}
	return rows
}

// IsEmpty reports whether the dataset has no columns or no rows.
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Columns) == 0 || d.RowCount() == 0
}

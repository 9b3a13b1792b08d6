// Package table materializes flattened row mappings into tabular results.
package table

// NullValue is the explicit sentinel for a missing cell. It is distinct
// from every valid data value: a missing Integer cell is Null, never 0,
// and a missing String cell is Null, never "".
type NullValue struct{}

// Null is the missing-cell sentinel stored in assembled rows.
var Null = NullValue{}

// IsNull reports whether a cell holds the missing-cell sentinel.
func IsNull(v interface{}) bool {
	_, ok := v.(NullValue)
	return ok
}

// Table is an ordered set of unique column names plus rows that all share
// the identical column set. Cells not supplied by a row's source record
// hold Null.
type Table struct {
	Columns []string
	Rows    []map[string]interface{}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// Cell returns the value at (row, column), or Null if the column does not
// exist in the table.
func (t *Table) Cell(row int, column string) interface{} {
	v, ok := t.Rows[row][column]
	if !ok {
		return Null
	}
	return v
}

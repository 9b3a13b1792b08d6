package table

import "sort"

// Assembler accumulates row mappings and materializes them into a Table.
//
// The final column set is the requested column order plus the union of all
// keys seen across all rows, appended in first-seen order, so a field
// encountered only on some rows is never silently dropped. Because that
// union is only known after the last row, assembly is an explicit
// two-phase protocol: Add collects, Finalize pads and emits.
type Assembler struct {
	columns []string
	known   map[string]bool
	rows    []map[string]interface{}
	done    bool
}

// NewAssembler creates an assembler with a canonical column order.
func NewAssembler(columnOrder []string) *Assembler {
	a := &Assembler{
		columns: make([]string, 0, len(columnOrder)),
		known:   make(map[string]bool, len(columnOrder)),
	}
	for _, c := range columnOrder {
		if a.known[c] {
			continue
		}
		a.known[c] = true
		a.columns = append(a.columns, c)
	}
	return a
}

// Add collects one row mapping. Keys outside the canonical order extend
// the column set; keys new in this row are appended in sorted order so the
// final ordering does not depend on map iteration.
func (a *Assembler) Add(row map[string]interface{}) {
	var extra []string
	for k := range row {
		if !a.known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		for _, k := range extra {
			a.known[k] = true
			a.columns = append(a.columns, k)
		}
	}

	a.rows = append(a.rows, row)
}

// Finalize pads every collected row to the full column set with Null and
// returns the table. The assembler must not be reused afterwards.
func (a *Assembler) Finalize() *Table {
	if a.done {
		panic("table: Finalize called twice")
	}
	a.done = true

	for _, row := range a.rows {
		for _, c := range a.columns {
			if _, ok := row[c]; !ok {
				row[c] = Null
			}
		}
	}

	return &Table{Columns: a.columns, Rows: a.rows}
}

// Assemble is the one-shot convenience form of the two-phase protocol.
func Assemble(rows []map[string]interface{}, columnOrder []string) *Table {
	a := NewAssembler(columnOrder)
	for _, row := range rows {
		a.Add(row)
	}
	return a.Finalize()
}

// Package output provides table output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vcframe/internal/table"
)

// TSVWriter writes tables in tab-delimited format. Null cells render as
// "." following VCF convention.
type TSVWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTSVWriter creates a new tab-delimited writer for the given columns.
func NewTSVWriter(w io.Writer, columns []string) *TSVWriter {
	return &TSVWriter{
		w:       bufio.NewWriter(w),
		columns: columns,
	}
}

// WriteHeader writes the column header line.
func (tw *TSVWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WriteRow writes a single assembled row.
func (tw *TSVWriter) WriteRow(row map[string]interface{}) error {
	cells := make([]string, len(tw.columns))
	for i, c := range tw.columns {
		v, ok := row[c]
		if !ok {
			v = table.Null
		}
		cells[i] = formatCell(v)
	}
	_, err := tw.w.WriteString(strings.Join(cells, "\t") + "\n")
	return err
}

// Flush flushes buffered output.
func (tw *TSVWriter) Flush() error {
	return tw.w.Flush()
}

// WriteTableTSV writes a whole table in tab-delimited format.
func WriteTableTSV(w io.Writer, tbl *table.Table) error {
	tw := NewTSVWriter(w, tbl.Columns)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, row := range tbl.Rows {
		if err := tw.WriteRow(row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// formatCell renders one cell value. Sequences join with commas; empty
// sequences and nulls render as ".".
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case table.NullValue:
		return "."
	case nil:
		return "."
	case string:
		if x == "" {
			return "."
		}
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []string:
		if len(x) == 0 {
			return "."
		}
		return strings.Join(x, ",")
	case []int:
		if len(x) == 0 {
			return "."
		}
		parts := make([]string, len(x))
		for i, n := range x {
			if n < 0 {
				parts[i] = "."
			} else {
				parts[i] = strconv.Itoa(n)
			}
		}
		return strings.Join(parts, ",")
	case []interface{}:
		if len(x) == 0 {
			return "."
		}
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatCell(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", x)
	}
}

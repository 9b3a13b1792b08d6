package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/inodb/vcframe/internal/table"
)

// JSONLWriter writes one JSON object per row. Null cells render as JSON
// null; column order inside an object follows the encoder, but every row
// carries the identical key set.
type JSONLWriter struct {
	w       *bufio.Writer
	enc     *json.Encoder
	columns []string
}

// NewJSONLWriter creates a new JSON Lines writer for the given columns.
func NewJSONLWriter(w io.Writer, columns []string) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{
		w:       bw,
		enc:     json.NewEncoder(bw),
		columns: columns,
	}
}

// WriteHeader is a no-op for JSON Lines; columns live on each object.
func (jw *JSONLWriter) WriteHeader() error { return nil }

// WriteRow writes a single assembled row as one JSON object.
func (jw *JSONLWriter) WriteRow(row map[string]interface{}) error {
	obj := make(map[string]interface{}, len(jw.columns))
	for _, c := range jw.columns {
		v, ok := row[c]
		if !ok {
			v = table.Null
		}
		obj[c] = v
	}
	return jw.enc.Encode(obj)
}

// Flush flushes buffered output.
func (jw *JSONLWriter) Flush() error {
	return jw.w.Flush()
}

// WriteTableJSONL writes a whole table as JSON Lines.
func WriteTableJSONL(w io.Writer, tbl *table.Table) error {
	jw := NewJSONLWriter(w, tbl.Columns)
	for _, row := range tbl.Rows {
		if err := jw.WriteRow(row); err != nil {
			return err
		}
	}
	return jw.Flush()
}

package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcframe/internal/table"
)

// WriteTable materializes an assembled table under the given name,
// replacing any previous contents, and batch-inserts the rows using the
// Appender API. Column types are inferred from the first non-null cell in
// each column; sequence-valued cells are stored in VCF comma notation.
func (s *Store) WriteTable(name string, tbl *table.Table) error {
	types := inferColumnTypes(tbl)

	defs := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), types[i])
	}

	ddl := fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)",
		quoteIdent(name), strings.Join(defs, ", "))
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	if len(tbl.Rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", name)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, row := range tbl.Rows {
		vals := make([]driver.Value, len(tbl.Columns))
		for i, c := range tbl.Columns {
			vals[i] = cellToSQL(row[c], types[i])
		}
		if err := appender.AppendRow(vals...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}

	return appender.Flush()
}

// CountRows returns the row count of a materialized table.
func (s *Store) CountRows(name string) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(name)).Scan(&n)
	return n, err
}

// inferColumnTypes picks a DuckDB type per column from the first non-null
// cell. All-null columns fall back to VARCHAR.
func inferColumnTypes(tbl *table.Table) []string {
	types := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		types[i] = "VARCHAR"
		for _, row := range tbl.Rows {
			v, ok := row[c]
			if !ok || table.IsNull(v) || v == nil {
				continue
			}
			switch v.(type) {
			case int, int64:
				types[i] = "BIGINT"
			case float64:
				types[i] = "DOUBLE"
			case bool:
				types[i] = "BOOLEAN"
			}
			break
		}
	}
	return types
}

// cellToSQL converts a table cell to its stored representation; Null maps
// to SQL NULL, never to a type-specific zero.
func cellToSQL(v interface{}, sqlType string) driver.Value {
	if v == nil || table.IsNull(v) {
		return nil
	}

	switch x := v.(type) {
	case int:
		return int64(x)
	case int64, float64, bool, string:
		return x
	case []string:
		if len(x) == 0 {
			return nil
		}
		return strings.Join(x, ",")
	case []int:
		if len(x) == 0 {
			return nil
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
			return nil
		}
		parts := make([]string, len(x))
		for i, e := range x {
			if e == nil {
				parts[i] = "."
			} else {
				parts[i] = fmt.Sprintf("%v", e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// quoteIdent quotes an identifier so column names like "S1.GT" survive.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

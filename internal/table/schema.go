package table

import "github.com/inodb/vcframe/internal/vcf"

// SchemaColumns is the column set of a schema introspection table.
var SchemaColumns = []string{"name", "number", "type", "description"}

// SchemaTable renders field declarations as a table with one row per
// declaration, in header declaration order.
func SchemaTable(descs []vcf.FieldDescriptor) *Table {
	rows := make([]map[string]interface{}, len(descs))
	for i, d := range descs {
		rows[i] = map[string]interface{}{
			"name":        d.Name,
			"number":      d.Arity.String(),
			"type":        string(d.Type),
			"description": d.Description,
		}
	}
	return Assemble(rows, SchemaColumns)
}

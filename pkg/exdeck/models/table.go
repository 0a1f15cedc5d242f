package models

import "fmt"

// UnknownColumnError reports a record lookup against a column that is not
// part of the table schema.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

// StructuredTable is a named, schema-bound rectangular range read from a
// workbook: a header row plus zero or more data records. It is immutable
// once built.
type StructuredTable struct {
	// Name is the workbook-unique table (ListObject) name.
	Name string
	// Columns is the ordered list of header names.
	Columns []string
	// Records is the ordered list of data rows.
	Records []Record

	colIndex map[string]int
}

// NewStructuredTable builds a table from its header names and row values.
// Rows shorter than the header are padded with nil; longer rows are
// truncated to the schema width.
func NewStructuredTable(name string, columns []string, rows [][]any) *StructuredTable {
	t := &StructuredTable{
		Name:     name,
		Columns:  columns,
		colIndex: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := t.colIndex[c]; !ok {
			t.colIndex[c] = i
		}
	}
	for _, row := range rows {
		values := make([]any, len(columns))
		copy(values, row)
		t.Records = append(t.Records, Record{table: t, values: values})
	}
	return t
}

// HasColumn reports whether name is part of the table schema.
func (t *StructuredTable) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// Record is one data row of a StructuredTable. Values are addressed by
// column name; lookups against columns outside the schema fail with
// UnknownColumnError instead of silently returning a zero value.
type Record struct {
	table  *StructuredTable
	values []any
}

// Get returns the value stored under the named column.
func (r Record) Get(column string) (any, error) {
	i, ok := r.table.colIndex[column]
	if !ok {
		return nil, &UnknownColumnError{Table: r.table.Name, Column: column}
	}
	return r.values[i], nil
}

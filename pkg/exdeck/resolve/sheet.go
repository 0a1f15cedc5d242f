// Package resolve recovers the provenance of summary cells: which structured
// table, which columns, and which filtered rows a cell's formula draws on.
package resolve

// Sheet is the spreadsheet collaborator the resolver reads from. It exposes
// both views of a cell: the evaluated value and the formula text. The two
// may diverge when the workbook carries stale cached values; resolution
// deliberately follows the value view (see ExtractPredicate).
type Sheet interface {
	// Value returns the evaluated value at (row, col), or nil for blank
	// cells. Indices are 1-based.
	Value(row, col int) any
	// Formula returns the "="-prefixed formula text at (row, col), or ""
	// when the cell holds no formula.
	Formula(row, col int) string
}

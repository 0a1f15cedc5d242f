package models

// FilterPredicate is the (column, value) pair that ties a summary formula to
// the source-table rows it aggregates. A zero Column means no predicate was
// recovered from the formula text.
type FilterPredicate struct {
	// Column is the source-table column compared by the formula.
	Column string
	// Value is the current evaluated value of the anchor cell the formula
	// compares against. It is read live from the value view, never parsed
	// out of the formula text.
	Value any
}

// ProvenanceSlice is the filtered, column-projected subset of a structured
// table that justifies one summary cell's value. Zero records is a valid
// outcome and renders as an empty detail table.
type ProvenanceSlice struct {
	// Columns is the ordered, de-duplicated projection column list.
	Columns []string
	// Records holds the source-table rows matching the filter predicate.
	Records []Record
}

// SummaryCell is one resolved (row, metric) cell of the summary grid.
type SummaryCell struct {
	// Address is the cell's sheet position.
	Address Address
	// Metric is the header of the cell's column.
	Metric string
	// Formula is the "="-prefixed formula text, possibly borrowed from a
	// neighboring row in the same column, or "" when none was found.
	Formula string
	// Value is the cell's evaluated value (nil when blank).
	Value any
	// Table is the resolved source-table name, or "" when the formula
	// references none and the default was used.
	Table string
	// Predicate is the recovered filter predicate.
	Predicate FilterPredicate
	// Provenance is the source-row slice backing the cell's value.
	Provenance ProvenanceSlice
}

// ResolvedRow is one summary data row with its provenance-resolved cells.
type ResolvedRow struct {
	// Row is the sheet row index.
	Row int
	// Key is the evaluated value of the row's key cell.
	Key any
	// Cells maps metric header to the resolved cell. Iterate via the grid
	// headers to preserve column order.
	Cells map[string]SummaryCell
}

// ResolvedGrid is the immutable result of provenance resolution over the
// whole summary region: the first of the three pipeline snapshots
// (ResolvedGrid, LinkedGrid, and the laid-out deck).
type ResolvedGrid struct {
	Region    SummaryRegion
	KeyHeader string
	Rows      []ResolvedRow
}

// Metrics returns the non-key headers in column order.
func (g ResolvedGrid) Metrics() []string {
	if len(g.Region.Headers) < 2 {
		return nil
	}
	return g.Region.Headers[1:]
}

// DetailKey identifies a detail view by grid position, not by key value, so
// two summary rows sharing the same key still yield distinct views.
type DetailKey struct {
	// RowIndex is the 1-based position of the row within the grid.
	RowIndex int
	// Metric is the metric column header.
	Metric string
}

// SummaryRef is the link target of every detail view's back button. There is
// exactly one summary view per deck.
type SummaryRef struct {
	Title string
}

// DetailView is the content of one auto-generated detail slide.
type DetailView struct {
	Key DetailKey
	// Title is "{key} – {metric}".
	Title string
	// Formula is the "="-prefixed formula text or "".
	Formula string
	// Value is the summary cell's evaluated value.
	Value any
	// Slice is the provenance slice rendered as the detail table.
	Slice ProvenanceSlice
	// Back is the view's single back-link to the summary view.
	Back SummaryRef
}

// LinkedGrid is the second pipeline snapshot: the resolved grid plus all
// detail views and the summary-cell to detail-view edge set.
type LinkedGrid struct {
	Grid ResolvedGrid
	// Summary is the single summary view.
	Summary SummaryRef
	// Views holds one detail view per non-skipped (row, metric) pair, in
	// construction order (row-major).
	Views []DetailView
	// Edges maps a summary cell to its detail view's index in Views.
	// Present only for cells whose display text is non-empty.
	Edges map[DetailKey]int
	// Display maps every (row, metric) pair to the formatted text rendered
	// in the summary grid, including skipped and unlinked cells.
	Display map[DetailKey]string
}

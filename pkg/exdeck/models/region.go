package models

// SummaryRegion is the header plus contiguous data-row block detected around
// a single anchor cell. The first header is the key header; data rows are
// contiguous and end at the first blank cell in the key column.
type SummaryRegion struct {
	// HeaderRow is the row index of the header row (anchor row - 1).
	HeaderRow int
	// Headers is the ordered list of column header texts.
	Headers []string
	// DataRows is the ordered list of data row indices.
	DataRows []int
	// StartCol is the column index of the key column.
	StartCol int
}

// LastDataRow returns the index of the final data row in the block.
func (r SummaryRegion) LastDataRow() int {
	return r.DataRows[len(r.DataRows)-1]
}

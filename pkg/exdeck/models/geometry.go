package models

// Rect is an absolute rectangle in EMU (English Metric Units).
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// GridGeometry holds the realized column and row geometry of a placed table.
// Offsets are absolute; sums of Widths and Heights equal the table's actual
// extent exactly.
type GridGeometry struct {
	// ColOffsets are the absolute left edges of each column.
	ColOffsets []int
	// ColWidths are the per-column widths.
	ColWidths []int
	// RowOffsets are the absolute top edges of each row.
	RowOffsets []int
	// RowHeights are the per-row heights.
	RowHeights []int
}

// Cols returns the column count.
func (g GridGeometry) Cols() int { return len(g.ColWidths) }

// Rows returns the row count.
func (g GridGeometry) Rows() int { return len(g.RowHeights) }

// CellRect returns the absolute rectangle of the cell at (row, col),
// derived from the realized offsets rather than any nominal request.
func (g GridGeometry) CellRect(row, col int) Rect {
	return Rect{
		Left:   g.ColOffsets[col],
		Top:    g.RowOffsets[row],
		Width:  g.ColWidths[col],
		Height: g.RowHeights[row],
	}
}

// Frame returns the table's bounding rectangle.
func (g GridGeometry) Frame() Rect {
	if g.Cols() == 0 || g.Rows() == 0 {
		return Rect{}
	}
	w, h := 0, 0
	for _, cw := range g.ColWidths {
		w += cw
	}
	for _, rh := range g.RowHeights {
		h += rh
	}
	return Rect{Left: g.ColOffsets[0], Top: g.RowOffsets[0], Width: w, Height: h}
}

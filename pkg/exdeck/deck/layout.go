package deck

import "github.com/ukaji3/exdeck-go/pkg/exdeck/models"

// SplitEven divides a total extent into n integer parts: every part gets the
// integer quotient and the last part absorbs the remainder, so the parts
// always sum to the total exactly.
func SplitEven(total, n int) []int {
	if n <= 0 {
		return nil
	}
	base := total / n
	parts := make([]int, n)
	for i := range parts {
		parts[i] = base
	}
	parts[n-1] = total - base*(n-1)
	return parts
}

// Offsets returns the absolute start positions of consecutive extents laid
// out from origin: the running sum of the realized sizes.
func Offsets(origin int, sizes []int) []int {
	offsets := make([]int, len(sizes))
	pos := origin
	for i, s := range sizes {
		offsets[i] = pos
		pos += s
	}
	return offsets
}

// NewGridGeometry derives the absolute cell geometry of a table placed at
// (left, top) from its realized column widths and row heights. Overlay
// hit-targets must be placed from this geometry, not from the nominal size
// request, so they stay aligned with the rendered cells after any downstream
// adjustment.
func NewGridGeometry(left, top int, widths, heights []int) models.GridGeometry {
	return models.GridGeometry{
		ColOffsets: Offsets(left, widths),
		ColWidths:  append([]int(nil), widths...),
		RowOffsets: Offsets(top, heights),
		RowHeights: append([]int(nil), heights...),
	}
}

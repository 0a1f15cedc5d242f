package deck

import (
	"fmt"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// SummaryTitle is the title of the single summary slide.
const SummaryTitle = "Summary Table"

// BuildLinks produces the linked grid from a resolved grid: one detail view
// per (row, metric) pair whose metric column is not in the skip set, plus
// summary-cell edges for every cell whose formatted display text is
// non-empty. Views are built in a first pass over the whole grid before any
// edge is wired, so wiring never depends on construction order. Skipped
// columns still display their values but carry no views and no edges.
//
// skipCols holds 1-based metric column indices (the key column is not
// counted). roundDigits controls the display-text formatting the edge
// decision is based on.
func BuildLinks(grid models.ResolvedGrid, skipCols map[int]bool, roundDigits int) models.LinkedGrid {
	lg := models.LinkedGrid{
		Grid:    grid,
		Summary: models.SummaryRef{Title: SummaryTitle},
		Edges:   make(map[models.DetailKey]int),
		Display: make(map[models.DetailKey]string),
	}

	// First pass: build every detail view.
	viewIndex := make(map[models.DetailKey]int)
	for i, row := range grid.Rows {
		for j, metric := range grid.Metrics() {
			key := models.DetailKey{RowIndex: i + 1, Metric: metric}
			cell := row.Cells[metric]
			lg.Display[key] = FormatValue(cell.Value, roundDigits)
			if skipCols[j+1] {
				continue
			}
			view := models.DetailView{
				Key:     key,
				Title:   fmt.Sprintf("%v – %s", row.Key, metric),
				Formula: cell.Formula,
				Value:   cell.Value,
				Slice:   cell.Provenance,
				Back:    lg.Summary,
			}
			viewIndex[key] = len(lg.Views)
			lg.Views = append(lg.Views, view)
		}
	}

	// Second pass: wire summary-cell edges for non-blank cells.
	for key, idx := range viewIndex {
		if lg.Display[key] != "" {
			lg.Edges[key] = idx
		}
	}
	return lg
}

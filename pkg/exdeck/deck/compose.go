package deck

import (
	"fmt"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// LinkMode selects how summary cells are made clickable.
type LinkMode string

const (
	// LinkModeOverlay places invisible rectangle hit-targets in front of
	// the summary table, with run-level links kept as a backup.
	LinkModeOverlay LinkMode = "overlay"
	// LinkModeText uses run-level hyperlinks only.
	LinkModeText LinkMode = "text"
)

// Style configures deck composition.
type Style struct {
	// TableFontPt is the font size for table text, headers included.
	TableFontPt int
	// RoundDigits is the decimal place count for numeric cell values.
	RoundDigits int
	// LinkMode selects overlay or text-only linking.
	LinkMode LinkMode
}

// DefaultStyle returns the composition defaults.
func DefaultStyle() Style {
	return Style{TableFontPt: 12, RoundDigits: 2, LinkMode: LinkModeOverlay}
}

// Summary-slide table placement.
var (
	summaryLeft  = Inches(0.5)
	summaryTop   = Inches(1.5)
	summaryWidth = Inches(9.5)
)

// Detail-slide placement.
var (
	detailContentLeft  = Inches(0.5)
	detailContentWidth = Inches(9.2)
	homeButtonFrame    = models.Rect{Left: Inches(9.0), Top: Inches(0.2), Width: Inches(0.5), Height: Inches(0.5)}
	formulaBoxFrame    = models.Rect{Left: detailContentLeft, Top: Inches(1.2), Width: detailContentWidth, Height: Inches(1.2)}
	snippetTop         = Inches(2.6)
)

// rowHeightEMU scales the summary row height with the font size: 0.4 inch
// suits an 18 pt font, so derive proportionally from that ratio.
func rowHeightEMU(fontPt int) int {
	return Points(0.4 * 72 / 18 * float64(fontPt))
}

// Compose writes the whole deck through w: the summary slide with its grid
// and overlay hit-targets, and one detail slide per view with formula text,
// evaluated value, provenance snippet, and a home button back to the
// summary. Detail slides are written before the summary grid's links so
// every link target exists when wired.
func Compose(w Writer, lg models.LinkedGrid, st Style) {
	headers := lg.Grid.Region.Headers
	metrics := lg.Grid.Metrics()
	sumCols := len(headers)
	sumRows := len(lg.Grid.Rows) + 1

	summary := w.AddSlide(lg.Summary.Title)

	rowH := rowHeightEMU(st.TableFontPt)
	grid := w.AddTable(summary, NewGridGeometry(
		summaryLeft, summaryTop,
		SplitEven(summaryWidth, sumCols),
		SplitEven(rowH*sumRows, sumRows),
	))

	for j, h := range headers {
		grid.SetCell(0, j, h, TextOptions{Bold: true, SizePt: st.TableFontPt})
	}

	// Detail slides first; the summary links are wired afterwards against
	// the complete view set.
	detailSlides := make(map[models.DetailKey]SlideRef, len(lg.Views))
	for _, view := range lg.Views {
		detailSlides[view.Key] = composeDetail(w, view, summary, st)
	}

	for i, row := range lg.Grid.Rows {
		grid.SetCell(i+1, 0, FormatValue(row.Key, st.RoundDigits), TextOptions{SizePt: st.TableFontPt})
		for j, metric := range metrics {
			key := models.DetailKey{RowIndex: i + 1, Metric: metric}
			text := lg.Display[key]
			grid.SetCell(i+1, j+1, text, TextOptions{SizePt: st.TableFontPt})
			idx, linked := lg.Edges[key]
			if !linked {
				continue
			}
			grid.LinkCell(i+1, j+1, detailSlides[key], lg.Views[idx].Title)
		}
	}

	if st.LinkMode != LinkModeOverlay {
		return
	}
	// Overlays are placed from the realized geometry, not the nominal size
	// request, so they stay pixel-exact over the rendered cells.
	realized := grid.Geometry()
	for i := range lg.Grid.Rows {
		for j, metric := range metrics {
			key := models.DetailKey{RowIndex: i + 1, Metric: metric}
			if _, linked := lg.Edges[key]; !linked {
				continue
			}
			rect := realized.CellRect(i+1, j+1)
			overlay := w.AddShape(summary, rect, ShapeStyle{
				Preset:      "rect",
				FillRGB:     "FFFFFF",
				Transparent: true,
				NoBorder:    true,
			})
			overlay.LinkTo(detailSlides[key])
		}
	}
}

// composeDetail writes one detail slide and returns its ref.
func composeDetail(w Writer, view models.DetailView, summary SlideRef, st Style) SlideRef {
	slide := w.AddSlide(view.Title)

	home := w.AddShape(slide, homeButtonFrame, ShapeStyle{Preset: "actionButtonHome"})
	home.LinkTo(summary)

	formula := view.Formula
	if formula == "" {
		formula = "(no formula found)"
	}
	w.AddTextBox(slide, formulaBoxFrame, true, []Paragraph{
		{Text: "Formula:", Bold: true},
		{Text: formula, Level: 1, SizePt: 14},
		{Text: fmt.Sprintf("Evaluated value: %s", FormatValue(view.Value, st.RoundDigits)), Level: 1, SizePt: 14},
	})

	cols := len(view.Slice.Columns)
	if cols == 0 {
		return slide
	}
	rows := len(view.Slice.Records)
	height := Inches(0.6 + 0.3*float64(max(rows, 1)))
	snippet := w.AddTable(slide, NewGridGeometry(
		detailContentLeft, snippetTop,
		SplitEven(detailContentWidth, cols),
		SplitEven(height, rows+1),
	))
	for j, c := range view.Slice.Columns {
		snippet.SetCell(0, j, c, TextOptions{Bold: true, SizePt: st.TableFontPt})
	}
	for i, rec := range view.Slice.Records {
		for j, c := range view.Slice.Columns {
			v, err := rec.Get(c)
			if err != nil {
				// Projection columns are intersected with the schema, so a
				// miss here cannot happen; render blank if it somehow does.
				v = nil
			}
			snippet.SetCell(i+1, j, FormatValue(v, st.RoundDigits), TextOptions{SizePt: st.TableFontPt})
		}
	}
	return slide
}

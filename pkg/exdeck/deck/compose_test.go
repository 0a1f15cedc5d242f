package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// fakeWriter records composition calls. Placed tables report a realized
// geometry deliberately shifted from the request, so tests can prove overlay
// placement reads the realized values back.
type fakeWriter struct {
	slides []string
	tables []*fakeTable
	boxes  []fakeBox
	shapes []*fakeShape
	shift  int
	saved  string
}

type fakeTable struct {
	slide    SlideRef
	geom     models.GridGeometry
	realized models.GridGeometry
	cells    map[[2]int]fakeCell
	links    map[[2]int]fakeLink
}

type fakeCell struct {
	text string
	opts TextOptions
}

type fakeLink struct {
	target  SlideRef
	tooltip string
}

type fakeBox struct {
	slide SlideRef
	frame models.Rect
	wrap  bool
	paras []Paragraph
}

type fakeShape struct {
	slide  SlideRef
	frame  models.Rect
	style  ShapeStyle
	target *SlideRef
}

func (w *fakeWriter) AddSlide(title string) SlideRef {
	w.slides = append(w.slides, title)
	return SlideRef(len(w.slides) - 1)
}

func (w *fakeWriter) AddTable(slide SlideRef, geom models.GridGeometry) Table {
	realized := NewGridGeometry(
		geom.ColOffsets[0]+w.shift, geom.RowOffsets[0]+w.shift,
		geom.ColWidths, geom.RowHeights,
	)
	t := &fakeTable{
		slide:    slide,
		geom:     geom,
		realized: realized,
		cells:    make(map[[2]int]fakeCell),
		links:    make(map[[2]int]fakeLink),
	}
	w.tables = append(w.tables, t)
	return t
}

func (w *fakeWriter) AddTextBox(slide SlideRef, frame models.Rect, wrap bool, paras []Paragraph) {
	w.boxes = append(w.boxes, fakeBox{slide: slide, frame: frame, wrap: wrap, paras: paras})
}

func (w *fakeWriter) AddShape(slide SlideRef, frame models.Rect, style ShapeStyle) Shape {
	s := &fakeShape{slide: slide, frame: frame, style: style}
	w.shapes = append(w.shapes, s)
	return s
}

func (w *fakeWriter) Save(path string) error {
	w.saved = path
	return nil
}

func (t *fakeTable) SetCell(row, col int, text string, opts TextOptions) {
	t.cells[[2]int{row, col}] = fakeCell{text: text, opts: opts}
}

func (t *fakeTable) LinkCell(row, col int, target SlideRef, tooltip string) {
	t.links[[2]int{row, col}] = fakeLink{target: target, tooltip: tooltip}
}

func (t *fakeTable) Geometry() models.GridGeometry { return t.realized }

func (s *fakeShape) LinkTo(target SlideRef) { s.target = &target }

// composedFixture builds a two-row, two-metric linked grid with provenance
// and runs Compose over a recording writer.
func composedFixture(t *testing.T, mode LinkMode, shift int) (*fakeWriter, models.LinkedGrid) {
	t.Helper()
	sales := models.NewStructuredTable("Sales",
		[]string{"Product", "Amount"},
		[][]any{{"Widget", 1234.5}, {"Gadget", int64(25)}})

	grid := testGrid([]string{"Product", "Revenue", "Units"}, []struct {
		key    any
		values []any
	}{
		{"Widget", []any{1234.5, int64(7)}},
		{"Gadget", []any{int64(25), nil}},
	})
	cell := grid.Rows[0].Cells["Revenue"]
	cell.Formula = "=SUMIFS(Sales[Amount],Sales[Product],$A12)"
	cell.Provenance = models.ProvenanceSlice{
		Columns: []string{"Product", "Amount"},
		Records: sales.Records[:1],
	}
	grid.Rows[0].Cells["Revenue"] = cell

	lg := BuildLinks(grid, nil, 1)
	w := &fakeWriter{shift: shift}
	Compose(w, lg, Style{TableFontPt: 12, RoundDigits: 1, LinkMode: mode})
	return w, lg
}

func TestComposeSlides(t *testing.T) {
	w, lg := composedFixture(t, LinkModeOverlay, 0)

	require.Len(t, w.slides, 1+len(lg.Views))
	assert.Equal(t, SummaryTitle, w.slides[0])
	for i, view := range lg.Views {
		assert.Equal(t, view.Title, w.slides[i+1])
	}
}

func TestComposeSummaryTable(t *testing.T) {
	w, _ := composedFixture(t, LinkModeOverlay, 0)

	require.NotEmpty(t, w.tables)
	grid := w.tables[0]
	assert.Equal(t, SlideRef(0), grid.slide)

	// Headers bold on row 0.
	for j, h := range []string{"Product", "Revenue", "Units"} {
		cell := grid.cells[[2]int{0, j}]
		assert.Equal(t, h, cell.text)
		assert.True(t, cell.opts.Bold)
	}

	// Values formatted with the configured digits.
	assert.Equal(t, "Widget", grid.cells[[2]int{1, 0}].text)
	assert.Equal(t, "1234.5", grid.cells[[2]int{1, 1}].text)
	assert.Equal(t, "7.0", grid.cells[[2]int{1, 2}].text)
	assert.Equal(t, "", grid.cells[[2]int{2, 2}].text)

	// Run-level backup links carry the detail title as tooltip; the blank
	// cell gets none.
	link, ok := grid.links[[2]int{1, 1}]
	require.True(t, ok)
	assert.Equal(t, "Widget – Revenue", link.tooltip)
	_, ok = grid.links[[2]int{2, 2}]
	assert.False(t, ok)

	// Layout invariant: widths sum to the requested total.
	sum := 0
	for _, cw := range grid.geom.ColWidths {
		sum += cw
	}
	assert.Equal(t, Inches(9.5), sum)
}

func TestComposeOverlaysUseRealizedGeometry(t *testing.T) {
	const shift = 9525
	w, lg := composedFixture(t, LinkModeOverlay, shift)

	grid := w.tables[0]
	var overlays []*fakeShape
	for _, s := range w.shapes {
		if s.slide == 0 && s.style.Transparent {
			overlays = append(overlays, s)
		}
	}
	require.Len(t, overlays, len(lg.Edges))

	for _, o := range overlays {
		assert.Equal(t, "rect", o.style.Preset)
		assert.Equal(t, "FFFFFF", o.style.FillRGB)
		assert.True(t, o.style.NoBorder)
		require.NotNil(t, o.target)
		// Placed from the realized (shifted) geometry, not the request.
		assert.Contains(t, grid.realized.ColOffsets, o.frame.Left)
		assert.NotContains(t, grid.geom.ColOffsets, o.frame.Left)
	}
}

func TestComposeOverlayRects(t *testing.T) {
	const shift = 9525
	w, lg := composedFixture(t, LinkModeOverlay, shift)
	grid := w.tables[0]

	for key := range lg.Edges {
		var found bool
		want := grid.realized.CellRect(key.RowIndex, indexOfMetric(lg, key.Metric)+1)
		for _, s := range w.shapes {
			if s.slide == 0 && s.style.Transparent && s.frame == want {
				found = true
			}
		}
		assert.True(t, found, "overlay for %v at %+v", key, want)
	}
}

func indexOfMetric(lg models.LinkedGrid, metric string) int {
	for i, m := range lg.Grid.Metrics() {
		if m == metric {
			return i
		}
	}
	return -1
}

func TestComposeTextModeHasNoOverlays(t *testing.T) {
	w, _ := composedFixture(t, LinkModeText, 0)

	for _, s := range w.shapes {
		assert.NotEqual(t, SlideRef(0), s.slide, "no shapes on the summary slide in text mode")
	}
}

func TestComposeDetailSlide(t *testing.T) {
	w, lg := composedFixture(t, LinkModeOverlay, 0)

	// First detail view: Widget – Revenue on slide 1.
	view := lg.Views[0]
	require.Equal(t, "Widget – Revenue", view.Title)

	// Home button links back to the summary slide.
	var home *fakeShape
	for _, s := range w.shapes {
		if s.slide == 1 && s.style.Preset == "actionButtonHome" {
			home = s
		}
	}
	require.NotNil(t, home)
	require.NotNil(t, home.target)
	assert.Equal(t, SlideRef(0), *home.target)

	// Formula box paragraphs.
	var box *fakeBox
	for i := range w.boxes {
		if w.boxes[i].slide == 1 {
			box = &w.boxes[i]
		}
	}
	require.NotNil(t, box)
	assert.True(t, box.wrap)
	require.Len(t, box.paras, 3)
	assert.Equal(t, "Formula:", box.paras[0].Text)
	assert.True(t, box.paras[0].Bold)
	assert.Equal(t, "=SUMIFS(Sales[Amount],Sales[Product],$A12)", box.paras[1].Text)
	assert.Equal(t, "Evaluated value: 1234.5", box.paras[2].Text)

	// Provenance snippet: header row plus the single matching record.
	var snippet *fakeTable
	for _, tb := range w.tables {
		if tb.slide == 1 {
			snippet = tb
		}
	}
	require.NotNil(t, snippet)
	assert.Equal(t, "Product", snippet.cells[[2]int{0, 0}].text)
	assert.Equal(t, "Amount", snippet.cells[[2]int{0, 1}].text)
	assert.Equal(t, "Widget", snippet.cells[[2]int{1, 0}].text)
	assert.Equal(t, "1234.5", snippet.cells[[2]int{1, 1}].text)
}

func TestComposeMissingFormulaPlaceholder(t *testing.T) {
	w, lg := composedFixture(t, LinkModeOverlay, 0)

	// The Units views carry no formula.
	var unitsSlide SlideRef
	for i, view := range lg.Views {
		if view.Key.Metric == "Units" && view.Key.RowIndex == 1 {
			unitsSlide = SlideRef(i + 1)
		}
	}
	var box *fakeBox
	for i := range w.boxes {
		if w.boxes[i].slide == unitsSlide {
			box = &w.boxes[i]
		}
	}
	require.NotNil(t, box)
	assert.Equal(t, "(no formula found)", box.paras[1].Text)
}

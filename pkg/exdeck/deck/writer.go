package deck

import "github.com/ukaji3/exdeck-go/pkg/exdeck/models"

// SlideRef identifies a slide within the deck being written, in creation
// order starting at 0.
type SlideRef int

// TextOptions styles one table cell's text run.
type TextOptions struct {
	Bold   bool
	SizePt int
	// Wrap enables word wrap in the cell's text frame.
	Wrap bool
}

// Paragraph is one paragraph of a text box.
type Paragraph struct {
	Text   string
	Bold   bool
	SizePt int
	// Level is the indentation level (0 = top level).
	Level int
}

// ShapeStyle configures a placed shape. The zero value is a plain filled
// rectangle.
type ShapeStyle struct {
	// Preset is the DrawingML preset geometry name, e.g. "rect" or
	// "actionButtonHome".
	Preset string
	// FillRGB is the solid fill color as a 6-digit hex string.
	FillRGB string
	// Transparent forces a fully transparent fill (alpha 0) so the shape
	// serves as an invisible hit-target.
	Transparent bool
	// NoBorder removes the outline.
	NoBorder bool
}

// Table is a placed table shape. Its Geometry method reports the realized
// cell geometry, which overlay placement must be derived from.
type Table interface {
	// SetCell sets the text of cell (row, col), 0-based.
	SetCell(row, col int, text string, opts TextOptions)
	// LinkCell attaches a slide-jump hyperlink to the text run of cell
	// (row, col), with an optional hover tooltip. This is the backup
	// navigation mechanism; overlays are the primary one.
	LinkCell(row, col int, target SlideRef, tooltip string)
	// Geometry returns the table's realized column/row geometry.
	Geometry() models.GridGeometry
}

// Shape is a placed shape that can carry a slide-jump action.
type Shape interface {
	// LinkTo attaches a click action jumping to the target slide.
	LinkTo(target SlideRef)
}

// Writer is the presentation-document collaborator the composer writes
// through. Implementations own the file format; the composer owns what goes
// on each slide.
type Writer interface {
	// AddSlide appends a slide with the given title and returns its ref.
	AddSlide(title string) SlideRef
	// AddTable places a table shape with the given cell geometry.
	AddTable(slide SlideRef, geom models.GridGeometry) Table
	// AddTextBox places a text box at frame holding the given paragraphs.
	AddTextBox(slide SlideRef, frame models.Rect, wrap bool, paras []Paragraph)
	// AddShape places a styled shape at frame.
	AddShape(slide SlideRef, frame models.Rect, style ShapeStyle) Shape
	// Save persists the document to path.
	Save(path string) error
}

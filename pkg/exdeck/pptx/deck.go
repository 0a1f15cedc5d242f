// Package pptx writes PowerPoint documents directly as OPC packages
// (archive/zip plus PresentationML/DrawingML markup). It implements the
// deck.Writer contract: slides, table shapes, text boxes, styled shapes, and
// slide-jump actions on shapes and text runs.
package pptx

import (
	"fmt"
	"os"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// Slide dimensions: 10 x 7.5 inches in EMU (4:3, matching the default
// presentation template).
const (
	slideWidthEMU  = 9144000
	slideHeightEMU = 6858000
)

// Deck is an in-memory presentation. Content accumulates through the
// deck.Writer methods and is serialized once by Save.
type Deck struct {
	slides []*slide
}

type slide struct {
	title string
	items []any // *tableShape, *textBox, *autoShape, in z-order
}

type cellKey struct{ row, col int }

type cellText struct {
	text string
	opts deck.TextOptions
}

type cellLink struct {
	target  deck.SlideRef
	tooltip string
}

type tableShape struct {
	geom  models.GridGeometry
	cells map[cellKey]cellText
	links map[cellKey]cellLink
}

type textBox struct {
	frame models.Rect
	wrap  bool
	paras []deck.Paragraph
}

type autoShape struct {
	frame models.Rect
	style deck.ShapeStyle
	link  *deck.SlideRef
}

// New returns an empty deck.
func New() *Deck {
	return &Deck{}
}

// AddSlide appends a title-only slide.
func (d *Deck) AddSlide(title string) deck.SlideRef {
	d.slides = append(d.slides, &slide{title: title})
	return deck.SlideRef(len(d.slides) - 1)
}

// AddTable places a table shape with the given cell geometry.
func (d *Deck) AddTable(ref deck.SlideRef, geom models.GridGeometry) deck.Table {
	t := &tableShape{
		geom:  geom,
		cells: make(map[cellKey]cellText),
		links: make(map[cellKey]cellLink),
	}
	s := d.slides[ref]
	s.items = append(s.items, t)
	return t
}

// AddTextBox places a text box.
func (d *Deck) AddTextBox(ref deck.SlideRef, frame models.Rect, wrap bool, paras []deck.Paragraph) {
	s := d.slides[ref]
	s.items = append(s.items, &textBox{frame: frame, wrap: wrap, paras: paras})
}

// AddShape places a styled shape.
func (d *Deck) AddShape(ref deck.SlideRef, frame models.Rect, style deck.ShapeStyle) deck.Shape {
	sp := &autoShape{frame: frame, style: style}
	s := d.slides[ref]
	s.items = append(s.items, sp)
	return sp
}

// Save writes the package to path. On failure no partial file is left behind
// referenced as complete: the temporary file is removed.
func (d *Deck) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := d.write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write pptx: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// SetCell sets the text of cell (row, col).
func (t *tableShape) SetCell(row, col int, text string, opts deck.TextOptions) {
	t.cells[cellKey{row, col}] = cellText{text: text, opts: opts}
}

// LinkCell attaches a run-level slide-jump hyperlink to cell (row, col).
func (t *tableShape) LinkCell(row, col int, target deck.SlideRef, tooltip string) {
	t.links[cellKey{row, col}] = cellLink{target: target, tooltip: tooltip}
}

// Geometry reports the realized geometry. The table is written with explicit
// per-column widths and per-row heights, so the realized geometry is exactly
// what was requested.
func (t *tableShape) Geometry() models.GridGeometry {
	return t.geom
}

// LinkTo attaches a shape-level slide-jump click action.
func (s *autoShape) LinkTo(target deck.SlideRef) {
	s.link = &target
}

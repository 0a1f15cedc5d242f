package pptx

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
)

// OPC relationship types.
const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
)

// slideJumpAction is the click action that jumps to another slide of the
// same presentation.
const slideJumpAction = "ppaction://hlinksldjump"

// relationship is one entry of a part's .rels file.
type relationship struct {
	id      string
	relType string
	target  string
}

func renderRels(rels []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.relType, r.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// slideRenderer accumulates the markup and relationships of one slide.
type slideRenderer struct {
	body    strings.Builder
	rels    []relationship
	shapeID int
}

// renderSlide produces the slide part XML and its relationships. The first
// relationship always points at the shared title-only layout.
func renderSlide(s *slide) (string, []relationship) {
	r := &slideRenderer{
		rels: []relationship{
			{id: "rId1", relType: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
		},
		shapeID: 1,
	}
	r.writeTitle(s.title)
	for _, item := range s.items {
		switch it := item.(type) {
		case *tableShape:
			r.writeTable(it)
		case *textBox:
			r.writeTextBox(it)
		case *autoShape:
			r.writeShape(it)
		}
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
		`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	b.WriteString(r.body.String())
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String(), r.rels
}

// nextShapeID returns a slide-unique shape id (id 1 is the group shape).
func (r *slideRenderer) nextShapeID() int {
	r.shapeID++
	return r.shapeID
}

// slideJumpRel allocates a relationship to the target slide and returns its
// id for use in hlinkClick elements.
func (r *slideRenderer) slideJumpRel(target deck.SlideRef) string {
	id := fmt.Sprintf("rId%d", len(r.rels)+1)
	r.rels = append(r.rels, relationship{
		id:      id,
		relType: relTypeSlide,
		target:  fmt.Sprintf("slide%d.xml", int(target)+1),
	})
	return id
}

func (r *slideRenderer) writeTitle(title string) {
	id := r.nextShapeID()
	fmt.Fprintf(&r.body,
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Title %d"/>`+
			`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`+
			`<p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>`+
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" dirty="0"/>`+
			`<a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, id, xmlEscape(title))
}

func (r *slideRenderer) writeTable(t *tableShape) {
	id := r.nextShapeID()
	frame := t.geom.Frame()
	fmt.Fprintf(&r.body,
		`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`+
			`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr>`+
			`<p:nvPr/></p:nvGraphicFramePr>`+
			`<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`+
			`<a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`,
		id, id, frame.Left, frame.Top, frame.Width, frame.Height)
	for _, w := range t.geom.ColWidths {
		fmt.Fprintf(&r.body, `<a:gridCol w="%d"/>`, w)
	}
	r.body.WriteString(`</a:tblGrid>`)
	for i, h := range t.geom.RowHeights {
		fmt.Fprintf(&r.body, `<a:tr h="%d">`, h)
		for j := range t.geom.ColWidths {
			r.writeTableCell(t, i, j)
		}
		r.body.WriteString(`</a:tr>`)
	}
	r.body.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func (r *slideRenderer) writeTableCell(t *tableShape, row, col int) {
	cell, hasText := t.cells[cellKey{row, col}]
	bodyPr := `<a:bodyPr/>`
	if hasText && !cell.opts.Wrap {
		bodyPr = `<a:bodyPr wrap="none"/>`
	}
	r.body.WriteString(`<a:tc><a:txBody>`)
	r.body.WriteString(bodyPr)
	r.body.WriteString(`<a:lstStyle/>`)
	if !hasText || cell.text == "" {
		r.body.WriteString(`<a:p/>`)
	} else {
		var rPr strings.Builder
		rPr.WriteString(`<a:rPr lang="en-US"`)
		if cell.opts.SizePt > 0 {
			fmt.Fprintf(&rPr, ` sz="%d"`, cell.opts.SizePt*100)
		}
		if cell.opts.Bold {
			rPr.WriteString(` b="1"`)
		}
		if link, ok := t.links[cellKey{row, col}]; ok {
			rPr.WriteString(`>`)
			fmt.Fprintf(&rPr, `<a:hlinkClick r:id="%s" action="%s"`, r.slideJumpRel(link.target), slideJumpAction)
			if link.tooltip != "" {
				fmt.Fprintf(&rPr, ` tooltip="%s"`, xmlEscape(link.tooltip))
			}
			rPr.WriteString(`/></a:rPr>`)
		} else {
			rPr.WriteString(`/>`)
		}
		fmt.Fprintf(&r.body, `<a:p><a:r>%s<a:t>%s</a:t></a:r></a:p>`, rPr.String(), xmlEscape(cell.text))
	}
	r.body.WriteString(`</a:txBody><a:tcPr/></a:tc>`)
}

func (r *slideRenderer) writeTextBox(tb *textBox) {
	id := r.nextShapeID()
	wrap := `wrap="none"`
	if tb.wrap {
		wrap = `wrap="square"`
	}
	fmt.Fprintf(&r.body,
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/>`+
			`<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
			`<p:txBody><a:bodyPr %s/><a:lstStyle/>`,
		id, id, tb.frame.Left, tb.frame.Top, tb.frame.Width, tb.frame.Height, wrap)
	for _, p := range tb.paras {
		r.body.WriteString(`<a:p>`)
		if p.Level > 0 {
			fmt.Fprintf(&r.body, `<a:pPr lvl="%d"/>`, p.Level)
		}
		r.body.WriteString(`<a:r><a:rPr lang="en-US"`)
		if p.SizePt > 0 {
			fmt.Fprintf(&r.body, ` sz="%d"`, p.SizePt*100)
		}
		if p.Bold {
			r.body.WriteString(` b="1"`)
		}
		fmt.Fprintf(&r.body, `/><a:t>%s</a:t></a:r></a:p>`, xmlEscape(p.Text))
	}
	r.body.WriteString(`</p:txBody></p:sp>`)
}

func (r *slideRenderer) writeShape(s *autoShape) {
	id := r.nextShapeID()
	preset := s.style.Preset
	if preset == "" {
		preset = "rect"
	}
	var hlink string
	if s.link != nil {
		hlink = fmt.Sprintf(`<a:hlinkClick r:id="%s" action="%s"/>`, r.slideJumpRel(*s.link), slideJumpAction)
	}
	var fill string
	if s.style.FillRGB != "" {
		alpha := ""
		if s.style.Transparent {
			// alpha val="0" renders the fill fully transparent while the
			// shape keeps receiving clicks: an invisible hit-target.
			alpha = `<a:alpha val="0"/>`
		}
		fill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s">%s</a:srgbClr></a:solidFill>`, s.style.FillRGB, alpha)
	}
	var line string
	if s.style.NoBorder {
		line = `<a:ln><a:noFill/></a:ln>`
	}
	fmt.Fprintf(&r.body,
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d">%s</p:cNvPr>`+
			`<p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>%s%s</p:spPr>`+
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
		id, id, hlink, s.frame.Left, s.frame.Top, s.frame.Width, s.frame.Height, preset, fill, line)
}

// xmlEscape escapes text for use in attribute values and element content.
func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

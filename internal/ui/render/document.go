package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/lineview/internal/document"
	"github.com/kk-code-lab/lineview/internal/textutil"
)

// Viewport is the screen rectangle a document is drawn into and the
// document position shown in its top-left cell.
type Viewport struct {
	X, Y          int
	Width, Height int
	// Top is the first paragraph shown.
	Top int
	// Left is the first column shown.
	Left int
}

// DrawDocument paints paragraphs of doc starting at vp.Top, one per row,
// without wrapping. Rows below the last paragraph are cleared. It returns
// the number of paragraphs drawn.
func (r *Renderer) DrawDocument(doc *document.Document, vp Viewport) int {
	base := r.theme.base()
	drawn := 0
	for row := 0; row < vp.Height; row++ {
		idx := vp.Top + row
		if doc == nil || idx < 0 || idx >= len(doc.Paragraphs) {
			r.fillRow(vp, row, 0, base)
			continue
		}
		end := r.drawParagraph(doc, idx, vp, row)
		r.fillRow(vp, row, end, base)
		drawn++
	}
	return drawn
}

// drawParagraph returns the first screen column, relative to vp.X, that
// was left untouched.
func (r *Renderer) drawParagraph(doc *document.Document, idx int, vp Viewport, row int) int {
	p := doc.Paragraphs[idx]
	cell := cellPoints(doc)
	y := vp.Y + row
	col := 0

	put := func(ru rune, width int, style tcell.Style) {
		x := col - vp.Left
		if x >= 0 && x+width <= vp.Width {
			r.screen.SetContent(vp.X+x, y, ru, nil, style)
			for w := 1; w < width; w++ {
				r.screen.SetContent(vp.X+x+w, y, ' ', nil, style)
			}
		}
		col += width
	}

	for _, run := range doc.ParagraphRuns(idx) {
		if run.Kind == document.RunBreak {
			continue
		}
		style := run.Style.TCell()
		if run.Style.Background == nil {
			style = style.Background(r.theme.Background)
		}
		for _, ru := range textutil.Visible(run.Text) {
			if col-vp.Left >= vp.Width {
				break
			}
			if ru == '\t' {
				next := tabColumn(p.Tabs, col, cell)
				for col < next {
					put(' ', 1, style)
				}
				continue
			}
			put(ru, max(r.cachedRuneWidth(ru), 1), style)
		}
	}
	return min(max(col-vp.Left, 0), vp.Width)
}

func (r *Renderer) fillRow(vp Viewport, row, from int, style tcell.Style) {
	for x := from; x < vp.Width; x++ {
		r.screen.SetContent(vp.X+x, vp.Y+row, ' ', nil, style)
	}
}

// cellPoints is the width of one terminal cell in points, taken from the
// space advance of the content font.
func cellPoints(doc *document.Document) float64 {
	if w := doc.ContentFont.Advance(' '); w > 0 {
		return w
	}
	return 1
}

// tabColumn maps the next tab stop after column col onto a column. The
// result is always right of col, also when the geometry has no further stop.
func tabColumn(tabs document.TabGeometry, col int, cell float64) int {
	stop := tabs.NextStop(float64(col) * cell)
	next := int(math.Ceil(stop/cell - 1e-9))
	return max(next, col+1)
}

// Package pager is a full-screen, scrollable view of a styled document.
package pager

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/lineview/internal/document"
	"github.com/kk-code-lab/lineview/internal/textutil"
	"github.com/kk-code-lab/lineview/internal/ui/render"
)

const horizontalStep = 8

// Pager shows one document. The last screen row is a status line.
type Pager struct {
	screen   tcell.Screen
	renderer *render.Renderer
	doc      *document.Document
	label    string

	top    int
	left   int
	width  int
	height int
}

// New creates a pager. label is shown in the status line, usually the
// file name and the detected encoding.
func New(screen tcell.Screen, doc *document.Document, label string) (*Pager, error) {
	if screen == nil {
		return nil, errors.New("pager: nil screen")
	}
	if doc == nil {
		return nil, errors.New("pager: nil document")
	}
	return &Pager{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		doc:      doc,
		label:    textutil.SanitizeTerminalText(label),
	}, nil
}

// Run draws and handles events until the user quits or the screen is
// finalized. The screen must already be initialized.
func (p *Pager) Run() error {
	for {
		p.Draw()
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if p.HandleKey(ev) {
				return nil
			}
		}
	}
}

// Draw renders the visible part of the document and the status line.
func (p *Pager) Draw() {
	p.updateSize()
	rows := p.contentRows()
	p.renderer.DrawDocument(p.doc, render.Viewport{
		Width:  p.width,
		Height: rows,
		Top:    p.top,
		Left:   p.left,
	})
	if p.height > 1 {
		p.renderer.DrawStatus(rows, p.statusLine(rows))
	}
	p.screen.Show()
}

// HandleKey applies one key press and reports whether the pager should exit.
func (p *Pager) HandleKey(ev *tcell.EventKey) bool {
	p.updateSize()
	rows := p.contentRows()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.top--
	case tcell.KeyDown, tcell.KeyEnter:
		p.top++
	case tcell.KeyPgUp:
		p.top -= rows
	case tcell.KeyPgDn:
		p.top += rows
	case tcell.KeyHome:
		p.top = 0
	case tcell.KeyEnd:
		p.top = len(p.doc.Paragraphs)
	case tcell.KeyLeft:
		p.left -= horizontalStep
	case tcell.KeyRight:
		p.left += horizontalStep
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			p.top--
		case 'j':
			p.top++
		case 'b':
			p.top -= rows
		case ' ', 'f':
			p.top += rows
		case 'g':
			p.top = 0
		case 'G':
			p.top = len(p.doc.Paragraphs)
		case 'h':
			p.left -= horizontalStep
		case 'l':
			p.left += horizontalStep
		case '0':
			p.left = 0
		}
	}

	p.clampScroll(rows)
	return false
}

// Position returns the first visible paragraph and column.
func (p *Pager) Position() (top, left int) {
	return p.top, p.left
}

func (p *Pager) updateSize() {
	p.width, p.height = p.screen.Size()
}

func (p *Pager) contentRows() int {
	return max(p.height-1, 1)
}

func (p *Pager) clampScroll(rows int) {
	maxTop := max(len(p.doc.Paragraphs)-rows, 0)
	p.top = min(max(p.top, 0), maxTop)
	p.left = max(p.left, 0)
}

func (p *Pager) statusLine(rows int) string {
	total := len(p.doc.Paragraphs)
	start, end := 0, 0
	if total > 0 {
		start = p.top + 1
		end = min(p.top+rows, total)
	}
	status := fmt.Sprintf("%d-%d/%d lines", start, end, total)
	if p.left > 0 {
		status += fmt.Sprintf("  col %d", p.left+1)
	}
	if p.label != "" {
		status = p.label + "  " + status
	}
	return status + "  ↑↓/PgUp/PgDn scroll  ←→ pan  q exit"
}

// Package render paints styled documents onto a tcell screen.
package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Renderer draws onto a single screen. Rune widths are cached because the
// same few runes are measured on every frame.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme

	runeWidthCache   [128]int
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map
}

// NewRenderer creates a renderer for screen with the default theme.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// SetTheme replaces the color theme.
func (r *Renderer) SetTheme(theme ColorTheme) {
	r.theme = theme
}

// DrawStatus fills row y with text in the footer style, truncated to the
// screen width.
func (r *Renderer) DrawStatus(y int, text string) {
	w, _ := r.screen.Size()
	style := r.theme.footer()
	text = r.truncateTextToWidth(text, w)

	x := 0
	for _, ru := range text {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += max(r.cachedRuneWidth(ru), 1)
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := max(runewidth.RuneWidth(ru), 0)
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return max(width-1, 0)
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	r.runeWidthWide.Store(ru, width)
	return width
}

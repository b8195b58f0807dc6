package style

import "github.com/gdamore/tcell/v2"

// Spec describes the visual attributes of a styled run.
type Spec struct {
	FontName   string
	FontSize   float64
	Foreground RGB
	// Background is nil when the run keeps the surface color.
	Background *RGB
}

// WithBackground returns a copy of s using bg as background color.
func (s Spec) WithBackground(bg RGB) Spec {
	s.Background = &bg
	return s
}

// TCell maps the colors of s onto a terminal cell style.
func (s Spec) TCell() tcell.Style {
	st := tcell.StyleDefault.Foreground(s.Foreground.TCell())
	if s.Background != nil {
		st = st.Background(s.Background.TCell())
	}
	return st
}

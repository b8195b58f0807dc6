package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines the colors the viewer uses around the document.
type ColorTheme struct {
	// Background is the page color behind runs without their own background.
	Background tcell.Color
	Foreground tcell.Color
	FooterBg   tcell.Color
	FooterFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background: tcell.ColorWhite,
		Foreground: tcell.ColorBlack,
		FooterBg:   tcell.Color236,
		FooterFg:   tcell.Color252,
	}
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

func (t ColorTheme) footer() tcell.Style {
	return tcell.StyleDefault.Background(t.FooterBg).Foreground(t.FooterFg)
}

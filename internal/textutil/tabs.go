package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// CellWidth is the number of terminal cells r occupies. Zero-width and
// non-printable runes still take one cell so the cursor always advances.
func CellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayWidth reports the printable width of text, measuring grapheme
// clusters so emoji sequences count once.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	out, _ := ExpandTabsFrom(text, 0, tabWidth)
	return out
}

// ExpandTabsFrom expands tabs in text as if it started at column col and
// returns the expanded text and the column after it.
func ExpandTabsFrom(text string, col, tabWidth int) (string, int) {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text, col + DisplayWidth(text)
	}

	var b strings.Builder
	b.Grow(len(text) + tabWidth)
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col += CellWidth(r)
	}
	return b.String(), col
}

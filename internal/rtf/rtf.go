// Package rtf serialises styled documents as RTF 1.x.
package rtf

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/kk-code-lab/lineview/internal/document"
	"github.com/kk-code-lab/lineview/internal/style"
)

var (
	ErrNilDocument = errors.New("rtf: nil document")
	ErrTooLarge    = errors.New("rtf: output exceeds size limit")
)

// Exporter writes Documents as RTF. The zero value has no size limit.
type Exporter struct {
	// MaxBytes caps the serialised size; 0 disables the check.
	MaxBytes int
}

// Export renders doc. It fails on a nil document or when the output would
// exceed MaxBytes; callers fall back to plain text in that case.
func (e Exporter) Export(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	t := newTables(doc)
	var buf bytes.Buffer
	buf.WriteString(`{\rtf1\ansi\ansicpg1252\deff0\uc1`)
	if len(doc.Paragraphs) > 0 {
		fmt.Fprintf(&buf, `\deftab%d`, twips(doc.Paragraphs[0].Tabs.Interval))
	}
	buf.WriteByte('\n')
	t.writeFontTable(&buf)
	t.writeColorTable(&buf)

	for i, p := range doc.Paragraphs {
		buf.WriteString(`\pard`)
		if p.Tabs.FirstStop > 0 {
			fmt.Fprintf(&buf, `\tx%d`, twips(p.Tabs.FirstStop))
		}
		buf.WriteByte(' ')
		for _, run := range doc.ParagraphRuns(i) {
			if run.Kind == document.RunBreak {
				buf.WriteString("\\par\n")
				continue
			}
			t.writeRun(&buf, run)
		}
		if e.MaxBytes > 0 && buf.Len() > e.MaxBytes {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, e.MaxBytes)
		}
	}

	buf.WriteString("}\n")
	if e.MaxBytes > 0 && buf.Len() > e.MaxBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, buf.Len(), e.MaxBytes)
	}
	return buf.Bytes(), nil
}

type tables struct {
	fonts     []string
	fontIndex map[string]int
	colors    []style.RGB
	colorIdx  map[style.RGB]int
}

func newTables(doc *document.Document) *tables {
	t := &tables{
		fontIndex: make(map[string]int),
		colorIdx:  make(map[style.RGB]int),
	}
	for _, run := range doc.Runs {
		t.font(run.Style.FontName)
		t.color(run.Style.Foreground)
		if run.Style.Background != nil {
			t.color(*run.Style.Background)
		}
	}
	return t
}

func (t *tables) font(name string) int {
	if idx, ok := t.fontIndex[name]; ok {
		return idx
	}
	idx := len(t.fonts)
	t.fonts = append(t.fonts, name)
	t.fontIndex[name] = idx
	return idx
}

// color returns the color table index; index 0 is the automatic color.
func (t *tables) color(c style.RGB) int {
	if idx, ok := t.colorIdx[c]; ok {
		return idx
	}
	t.colors = append(t.colors, c)
	idx := len(t.colors)
	t.colorIdx[c] = idx
	return idx
}

func (t *tables) writeFontTable(buf *bytes.Buffer) {
	buf.WriteString(`{\fonttbl`)
	for i, name := range t.fonts {
		fmt.Fprintf(buf, `{\f%d\fmodern\fcharset0 `, i)
		writeText(buf, name)
		buf.WriteString(";}")
	}
	buf.WriteString("}\n")
}

func (t *tables) writeColorTable(buf *bytes.Buffer) {
	buf.WriteString(`{\colortbl;`)
	for _, c := range t.colors {
		fmt.Fprintf(buf, `\red%d\green%d\blue%d;`, c.R, c.G, c.B)
	}
	buf.WriteString("}\n")
}

func (t *tables) writeRun(buf *bytes.Buffer, run document.Run) {
	fmt.Fprintf(buf, `{\f%d\fs%d\cf%d`, t.font(run.Style.FontName), halfPoints(run.Style.FontSize), t.color(run.Style.Foreground))
	if run.Style.Background != nil {
		fmt.Fprintf(buf, `\highlight%d`, t.color(*run.Style.Background))
	}
	buf.WriteByte(' ')
	writeText(buf, run.Text)
	buf.WriteByte('}')
}

// writeText escapes s for an RTF body. Non-ASCII runes become \uN with a
// '?' fallback; runes outside the BMP are written as surrogate pairs.
func writeText(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case r == '\t':
			buf.WriteString(`\tab `)
		case r < 0x20:
			fmt.Fprintf(buf, `\'%02x`, r)
		case r < 0x80:
			buf.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeUnicode(buf, hi)
			writeUnicode(buf, lo)
		default:
			writeUnicode(buf, r)
		}
	}
}

func writeUnicode(buf *bytes.Buffer, r rune) {
	n := int(r)
	if n > math.MaxInt16 {
		n -= 1 << 16
	}
	fmt.Fprintf(buf, `\u%d?`, n)
}

func twips(points float64) int {
	return int(math.Round(points * 20))
}

func halfPoints(size float64) int {
	if size <= 0 {
		size = style.DefaultFontSize
	}
	return int(math.Round(size * 2))
}

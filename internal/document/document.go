// Package document builds styled, line-numbered documents for rich-text
// exporters and terminal rendering.
package document

import (
	"math"

	"github.com/kk-code-lab/lineview/internal/config"
	"github.com/kk-code-lab/lineview/internal/lines"
	"github.com/kk-code-lab/lineview/internal/style"
)

// TabStopPadding is the gap in points between the widest line number and
// the first tab stop when the separator is a tab.
const TabStopPadding = 8.0

// TabGeometry is the tab layout of a paragraph, in points.
type TabGeometry struct {
	// Interval is the distance between default tab stops.
	Interval float64
	// FirstStop is an explicit stop aligning content after the line
	// number column. Zero means no explicit stop.
	FirstStop float64
}

// NextStop returns the first tab stop strictly right of x. A geometry with
// no Interval has no such stop once x reaches FirstStop; NextStop then
// returns x unchanged and the caller decides the minimum advance.
func (g TabGeometry) NextStop(x float64) float64 {
	if g.FirstStop > 0 && x < g.FirstStop {
		return g.FirstStop
	}
	if g.Interval <= 0 {
		return x
	}
	return (math.Floor(x/g.Interval) + 1) * g.Interval
}

// Paragraph is one logical line. Its runs are Document.Runs[Start:End],
// including the trailing break run when there is one.
type Paragraph struct {
	Line  lines.Record
	Start int
	End   int
	Tabs  TabGeometry
}

// Document is an immutable sequence of styled runs grouped into paragraphs.
type Document struct {
	Runs       []Run
	Paragraphs []Paragraph

	LineNumbers    bool
	DigitWidth     int
	LineNumberFont style.Font
	ContentFont    style.Font
	Trailing       lines.Break
}

// ParagraphRuns returns the runs of paragraph i.
func (d *Document) ParagraphRuns(i int) []Run {
	p := d.Paragraphs[i]
	return d.Runs[p.Start:p.End]
}

// Text concatenates all runs. With line numbers enabled it equals the output
// of lines.Format for the same input.
func (d *Document) Text() string {
	return joinRunsText(d.Runs)
}

// Build styles text using the built-in fonts.
func Build(text string, cfg config.FormattingConfig) *Document {
	return BuildWith(text, cfg, style.DefaultRegistry())
}

// BuildWith styles text, resolving fonts through fonts. Unknown fonts fall
// back to the registry's monospaced default; nothing here fails.
func BuildWith(text string, cfg config.FormattingConfig, fonts *style.Registry) *Document {
	records, trailing := lines.Split(text)
	width := lines.DigitWidth(len(records), cfg.EffectiveMinDigits())
	sep := lines.ResolveSeparator(cfg.Separator)

	numberFont := fonts.Resolve(cfg.LineNumberStyle.FontName, cfg.LineNumberStyle.FontSize)
	contentFont := fonts.Resolve(cfg.ContentStyle.FontName, cfg.ContentStyle.FontSize)
	numberStyle := withFont(cfg.LineNumberStyle, numberFont)
	contentStyle := withFont(cfg.ContentStyle, contentFont)

	tabs := TabGeometry{Interval: tabInterval(cfg, contentFont)}
	if cfg.LineNumbers && sep == "\t" {
		tabs.FirstStop = float64(width)*numberFont.Advance('0') + TabStopPadding
	}

	// A tab separator takes the content style so it lands on the content
	// tab stops.
	sepStyle := numberStyle
	if sep == "\t" {
		sepStyle = contentStyle
	}

	doc := &Document{
		Runs:           make([]Run, 0, len(records)*4),
		Paragraphs:     make([]Paragraph, 0, len(records)),
		LineNumbers:    cfg.LineNumbers,
		DigitWidth:     width,
		LineNumberFont: numberFont,
		ContentFont:    contentFont,
		Trailing:       trailing,
	}

	last := len(records) - 1
	for i, rec := range records {
		start := len(doc.Runs)
		if cfg.LineNumbers {
			doc.Runs = append(doc.Runs, Run{Text: lines.PadNumber(rec.Index, width), Style: numberStyle, Kind: RunLineNumber})
			if sep != "" {
				doc.Runs = append(doc.Runs, Run{Text: sep, Style: sepStyle, Kind: RunSeparator})
			}
		}
		if rec.Content != "" {
			doc.Runs = append(doc.Runs, Run{Text: rec.Content, Style: contentStyle, Kind: RunContent})
		}
		switch {
		case i < last:
			doc.Runs = append(doc.Runs, Run{Text: "\n", Style: contentStyle, Kind: RunBreak})
		case trailing != lines.BreakNone:
			doc.Runs = append(doc.Runs, Run{Text: trailing.String(), Style: contentStyle, Kind: RunBreak})
		}
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{Line: rec, Start: start, End: len(doc.Runs), Tabs: tabs})
	}
	return doc
}

func withFont(s style.Spec, f style.Font) style.Spec {
	s.FontName = f.Name
	s.FontSize = f.Size
	return s
}

// tabInterval converts the configured tab value to points. In character
// mode the reference character is the space of the content font.
func tabInterval(cfg config.FormattingConfig, contentFont style.Font) float64 {
	value := cfg.TabValue
	if value <= 0 {
		value = config.DefaultTabValue
	}
	switch cfg.TabMode {
	case config.TabPoints:
		return value
	default:
		return contentFont.Advance(' ') * value
	}
}

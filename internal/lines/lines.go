// Package lines splits decoded text into numbered lines and reassembles it.
package lines

import (
	"strconv"
	"strings"

	"github.com/kk-code-lab/lineview/internal/config"
)

// Break is a line-ending sequence.
type Break int

const (
	BreakNone Break = iota
	BreakLF
	BreakCR
	BreakCRLF
)

func (b Break) String() string {
	switch b {
	case BreakLF:
		return "\n"
	case BreakCR:
		return "\r"
	case BreakCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// Name is a human readable label for b.
func (b Break) Name() string {
	switch b {
	case BreakLF:
		return "LF"
	case BreakCR:
		return "CR"
	case BreakCRLF:
		return "CRLF"
	default:
		return "none"
	}
}

// Record is one logical line. Index is 1-based.
type Record struct {
	Index   int
	Content string
}

// TrailingBreak reports the line ending that terminates text.
func TrailingBreak(text string) Break {
	switch {
	case strings.HasSuffix(text, "\r\n"):
		return BreakCRLF
	case strings.HasSuffix(text, "\n"):
		return BreakLF
	case strings.HasSuffix(text, "\r"):
		return BreakCR
	default:
		return BreakNone
	}
}

// Split cuts text into records. The trailing line ending is removed first
// and returned, so "a\nb\n" yields two records; every other break, including
// consecutive or leading ones, separates records and may produce empty ones.
// CRLF is consumed as a single break. Empty text yields one empty record.
func Split(text string) ([]Record, Break) {
	trailing := TrailingBreak(text)
	body := text[:len(text)-len(trailing.String())]

	records := make([]Record, 0, strings.Count(body, "\n")+1)
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\n' && c != '\r' {
			continue
		}
		records = append(records, Record{Index: len(records) + 1, Content: body[start:i]})
		if c == '\r' && i+1 < len(body) && body[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	records = append(records, Record{Index: len(records) + 1, Content: body[start:]})
	return records, trailing
}

// DigitWidth is the zero-padded width for line numbers in a document of
// total lines: the decimal length of total, but never less than minDigits.
func DigitWidth(total, minDigits int) int {
	width := len(strconv.Itoa(total))
	if width < minDigits {
		return minDigits
	}
	return width
}

// PadNumber renders n left-padded with zeros to width digits.
func PadNumber(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// ResolveSeparator maps a separator token onto the literal placed between
// the line number and the content. Unknown tokens are used verbatim.
func ResolveSeparator(token string) string {
	switch strings.ToLower(token) {
	case "space", " ":
		return " "
	case "tab", `\t`, "\t":
		return "\t"
	case "colon", ":":
		return ":"
	case "pipe", "|":
		return "|"
	default:
		return token
	}
}

// Format renders text with line numbers. Lines are joined with "\n" and the
// original trailing break, if any, is appended once. With numbering disabled
// text is returned unchanged.
func Format(text string, cfg config.FormattingConfig) (string, Break) {
	if !cfg.LineNumbers {
		return text, TrailingBreak(text)
	}

	records, trailing := Split(text)
	width := DigitWidth(len(records), cfg.EffectiveMinDigits())
	sep := ResolveSeparator(cfg.Separator)

	var b strings.Builder
	b.Grow(len(text) + len(records)*(width+len(sep)+1))
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(PadNumber(rec.Index, width))
		b.WriteString(sep)
		b.WriteString(rec.Content)
	}
	b.WriteString(trailing.String())
	return b.String(), trailing
}

package document

import "github.com/kk-code-lab/lineview/internal/style"

// RunKind describes the role of a run inside a paragraph.
type RunKind int

const (
	RunLineNumber RunKind = iota
	RunSeparator
	RunContent
	RunBreak
)

func (k RunKind) String() string {
	switch k {
	case RunLineNumber:
		return "number"
	case RunSeparator:
		return "separator"
	case RunContent:
		return "content"
	default:
		return "break"
	}
}

// Run is a chunk of text with one set of visual attributes.
type Run struct {
	Text  string
	Style style.Spec
	Kind  RunKind
}

// IsLineNumber reports whether the run carries a line number.
func (r Run) IsLineNumber() bool {
	return r.Kind == RunLineNumber
}

func joinRunsText(runs []Run) string {
	if len(runs) == 0 {
		return ""
	}
	total := 0
	for _, r := range runs {
		total += len(r.Text)
	}
	buf := make([]byte, 0, total)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// Package preview turns a byte sample into either a hex dump or decoded,
// numbered and optionally styled text.
package preview

import (
	"log/slog"

	"github.com/kk-code-lab/lineview/internal/config"
	"github.com/kk-code-lab/lineview/internal/document"
	"github.com/kk-code-lab/lineview/internal/lines"
	"github.com/kk-code-lab/lineview/internal/rtf"
	"github.com/kk-code-lab/lineview/internal/style"
	"github.com/kk-code-lab/lineview/internal/textenc"
)

// Exporter serialises a styled document into a rich-text byte stream.
type Exporter interface {
	Export(doc *document.Document) ([]byte, error)
}

// Request describes one preview. Content is already capped by the caller.
type Request struct {
	Path    string
	Content []byte
	// TotalSize is the size of the source; 0 means len(Content).
	TotalSize  int64
	Config     config.FormattingConfig
	Candidates []textenc.Tag
	// TrustBOM treats content starting with a byte-order mark as text even
	// when the classifier would call it binary (UTF-16/32 contain NULs).
	TrustBOM bool
}

// Result is the outcome of Build.
type Result struct {
	Binary    bool
	Hex       BinaryPreview
	Detection textenc.Result
	// Plain is the numbered text; it is always set for text input and is
	// the fallback output when rich-text export fails.
	Plain    string
	Trailing lines.Break
	Document *document.Document
	RTF      []byte
	// ExportErr is the exporter failure, if any.
	ExportErr error
}

// Output returns the bytes a caller should emit: RTF when export
// succeeded, otherwise the plain text or the hex dump.
func (r Result) Output() []byte {
	switch {
	case r.Binary:
		return []byte(r.Hex.String())
	case len(r.RTF) > 0:
		return r.RTF
	default:
		return []byte(r.Plain)
	}
}

// Builder assembles previews. It is safe for concurrent use.
type Builder struct {
	exporter Exporter
	fonts    *style.Registry
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithExporter replaces the RTF exporter.
func WithExporter(e Exporter) Option {
	return func(b *Builder) {
		if e != nil {
			b.exporter = e
		}
	}
}

// WithFonts sets the registry used to resolve style fonts.
func WithFonts(r *style.Registry) Option {
	return func(b *Builder) {
		if r != nil {
			b.fonts = r
		}
	}
}

// WithLogger sets the logger for detection and export diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder exporting with rtf.Exporter and the built-in fonts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		exporter: rtf.Exporter{},
		fonts:    style.DefaultRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the first formatter that accepts the request.
func (b *Builder) Build(req Request) Result {
	ctx := formatContext{req: req, builder: b}
	var res Result
	for _, f := range previewFormatters {
		if f.CanHandle(ctx) {
			f.Format(ctx, &res)
			break
		}
	}
	return res
}

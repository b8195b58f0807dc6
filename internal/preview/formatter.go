package preview

import (
	"github.com/kk-code-lab/lineview/internal/document"
	fsutil "github.com/kk-code-lab/lineview/internal/fs"
	"github.com/kk-code-lab/lineview/internal/lines"
	"github.com/kk-code-lab/lineview/internal/textenc"
)

type formatContext struct {
	req     Request
	builder *Builder
}

type previewFormatter interface {
	CanHandle(ctx formatContext) bool
	Format(ctx formatContext, res *Result)
}

var previewFormatters = []previewFormatter{
	binaryFormatter{},
	textFormatter{},
}

type binaryFormatter struct{}

func (binaryFormatter) CanHandle(ctx formatContext) bool {
	if ctx.req.TrustBOM && fsutil.DetectBOM(ctx.req.Content) != fsutil.BOMNone {
		return false
	}
	return !fsutil.IsTextFile(ctx.req.Path, ctx.req.Content)
}

func (binaryFormatter) Format(ctx formatContext, res *Result) {
	total := ctx.req.TotalSize
	if total <= 0 {
		total = int64(len(ctx.req.Content))
	}
	res.Binary = true
	res.Hex = formatBinaryPreview(ctx.req.Content, total)
	ctx.builder.logger.Debug("binary content", "path", ctx.req.Path, "bytes", len(ctx.req.Content))
}

type textFormatter struct{}

func (textFormatter) CanHandle(formatContext) bool {
	return true
}

func (textFormatter) Format(ctx formatContext, res *Result) {
	b := ctx.builder
	log := b.logger.With("path", ctx.req.Path)
	cfg := ctx.req.Config

	res.Detection = textenc.Detect(ctx.req.Content,
		textenc.WithCandidates(ctx.req.Candidates...),
		textenc.WithLogger(log),
	)
	res.Plain, res.Trailing = lines.Format(res.Detection.Text, cfg)

	if !cfg.RTF {
		return
	}
	res.Document = document.BuildWith(res.Detection.Text, cfg, b.fonts)
	out, err := b.exporter.Export(res.Document)
	if err != nil {
		log.Warn("rich-text export failed, falling back to plain text", "err", err)
		res.ExportErr = err
		return
	}
	res.RTF = out
}

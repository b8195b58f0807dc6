package textenc

import (
	"bytes"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/saintfish/chardet"

	fsutil "github.com/kk-code-lab/lineview/internal/fs"
)

// Stage identifies which step of the pipeline produced a Result.
type Stage int

const (
	StageBOM Stage = iota
	StageUTF8
	StageStatistical
	StageFallback
	StageLossy
)

func (s Stage) String() string {
	switch s {
	case StageBOM:
		return "bom"
	case StageUTF8:
		return "utf8"
	case StageStatistical:
		return "statistical"
	case StageFallback:
		return "fallback"
	default:
		return "lossy"
	}
}

// Result is the decoded form of a byte sample.
type Result struct {
	Encoding    Tag
	Text        string
	BOMStripped bool
	Stage       Stage
}

type options struct {
	candidates []Tag
	logger     *slog.Logger
}

// Option customises Detect.
type Option func(*options)

// WithCandidates restricts the statistical stage to the given encodings.
// An empty list keeps DefaultCandidates.
func WithCandidates(tags ...Tag) Option {
	return func(o *options) {
		if len(tags) > 0 {
			o.candidates = tags
		}
	}
}

// WithLogger reports stage decisions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Detect decodes sample into text. Stages run in order and the first one
// that succeeds wins: BOM, strict UTF-8, statistical detection, the fallback
// chain and finally lossy UTF-8, which cannot fail.
//
// Detect does not classify; callers gate binary content with
// fs.ClassifySample first.
func Detect(sample []byte, opts ...Option) Result {
	o := options{
		candidates: DefaultCandidates,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With("bytes", len(sample))

	if res, ok := detectBOM(sample); ok {
		log.Debug("encoding detected", "stage", res.Stage, "encoding", res.Encoding)
		return res
	}

	if ValidUTF8(sample) {
		log.Debug("encoding detected", "stage", StageUTF8, "encoding", UTF8)
		return Result{Encoding: UTF8, Text: string(sample), Stage: StageUTF8}
	}

	if res, ok := detectStatistical(sample, o.candidates, log); ok {
		log.Debug("encoding detected", "stage", res.Stage, "encoding", res.Encoding)
		return res
	}

	for _, tag := range FallbackChain {
		if text, ok := decodeStrict(tag, sample); ok {
			log.Debug("encoding detected", "stage", StageFallback, "encoding", tag)
			return Result{Encoding: tag, Text: text, Stage: StageFallback}
		}
	}

	log.Debug("encoding detected", "stage", StageLossy, "encoding", UTF8)
	return Result{Encoding: UTF8, Text: decodeLossy(sample), Stage: StageLossy}
}

var bomTags = map[fsutil.BOM]Tag{
	fsutil.BOMUTF32BE: UTF32BE,
	fsutil.BOMUTF32LE: UTF32LE,
	fsutil.BOMUTF8:    UTF8,
	fsutil.BOMUTF16BE: UTF16BE,
	fsutil.BOMUTF16LE: UTF16LE,
}

// detectBOM decodes the bytes after a byte-order mark. A BOM whose payload
// does not decode is ignored so later stages see the original buffer.
func detectBOM(sample []byte) (Result, bool) {
	bom := fsutil.DetectBOM(sample)
	tag, ok := bomTags[bom]
	if !ok {
		return Result{}, false
	}
	text, ok := decodeStrict(tag, sample[bom.Len():])
	if !ok {
		return Result{}, false
	}
	return Result{Encoding: tag, Text: text, BOMStripped: true, Stage: StageBOM}, true
}

func detectStatistical(sample []byte, candidates []Tag, log *slog.Logger) (Result, bool) {
	if len(sample) == 0 {
		return Result{}, false
	}
	results, err := chardet.NewTextDetector().DetectAll(sample)
	if err != nil {
		log.Debug("statistical detection inconclusive", "err", err)
		return Result{}, false
	}

	for _, r := range results {
		tag, ok := ParseTag(r.Charset)
		if !ok || !slices.Contains(candidates, tag) {
			continue
		}
		text, ok := decodeStrict(tag, sample)
		if !ok {
			log.Debug("statistical candidate is lossy", "charset", r.Charset, "confidence", r.Confidence)
			continue
		}
		return Result{Encoding: tag, Text: text, Stage: StageStatistical}, true
	}
	return Result{}, false
}

// decodeLossy replaces every invalid byte with U+FFFD.
func decodeLossy(b []byte) string {
	var buf bytes.Buffer
	buf.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(b[:size])
		}
		b = b[size:]
	}
	return buf.String()
}

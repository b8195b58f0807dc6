package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/lineview/internal/config"
	"github.com/kk-code-lab/lineview/internal/document"
	fsutil "github.com/kk-code-lab/lineview/internal/fs"
	"github.com/kk-code-lab/lineview/internal/preview"
	"github.com/kk-code-lab/lineview/internal/style"
	"github.com/kk-code-lab/lineview/internal/textenc"
	"github.com/kk-code-lab/lineview/internal/ui/pager"
)

const defaultLimit = 16 << 20

var errNotTerminal = errors.New("--view needs a terminal on stdin and stdout")

type options struct {
	configPath   string
	noNumbers    bool
	separator    string
	minDigits    int
	rtfPath      string
	view         bool
	limit        int64
	trustBOM     bool
	encodingInfo bool
	verbose      bool
	fontDir      string
}

// streams are the process streams; tests replace them.
type streams struct {
	in       io.Reader
	out      io.Writer
	err      io.Writer
	terminal func() bool
	screen   func() (tcell.Screen, error)
}

func defaultStreams() streams {
	return streams{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
		terminal: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
		screen: tcell.NewScreen,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRootCommand(std streams) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "lineview [file]",
		Short:         "Print a text file with line numbers, detecting its encoding",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, std, opts, path)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML settings file")
	f.BoolVar(&opts.noNumbers, "no-numbers", false, "print text without line numbers")
	f.StringVar(&opts.separator, "separator", config.DefaultSeparator, "separator after the line number: space, tab, colon, pipe or a literal")
	f.IntVar(&opts.minDigits, "min-digits", config.DefaultMinDigits, "minimum width of the line number column")
	f.StringVar(&opts.rtfPath, "rtf", "", "write styled RTF to this path ('-' for stdout)")
	f.BoolVar(&opts.view, "view", false, "open the styled text in a terminal viewer")
	f.Int64Var(&opts.limit, "limit", defaultLimit, "maximum number of bytes to read")
	f.BoolVar(&opts.trustBOM, "trust-bom", false, "decode input with a byte-order mark even if it looks binary")
	f.BoolVar(&opts.encodingInfo, "encoding-info", false, "report the detected encoding on stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	f.StringVar(&opts.fontDir, "font-dir", "", "directory with extra .ttf/.otf fonts")
	return cmd
}

func run(cmd *cobra.Command, std streams, opts options, path string) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(std.err, &slog.HandlerOptions{Level: level}))

	if opts.view && !std.terminal() {
		return errNotTerminal
	}

	var settings config.Settings
	if opts.configPath != "" {
		s, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		settings = s
	}
	cfg := settings.Resolve(logger)
	applyFlags(cmd, opts, &cfg)

	candidates := resolveCandidates(settings.Encodings, logger)

	fonts := style.DefaultRegistry()
	if opts.fontDir != "" {
		loaded, err := fonts.LoadDir(opts.fontDir)
		if err != nil {
			logger.Warn("font directory not loaded", "dir", opts.fontDir, "err", err)
		} else {
			fonts = loaded
		}
	}

	content, total, err := readInput(std.in, path, opts.limit)
	if err != nil {
		return err
	}
	logger.Debug("input read", "path", path, "bytes", len(content), "total", total)

	builder := preview.NewBuilder(preview.WithFonts(fonts), preview.WithLogger(logger))
	res := builder.Build(preview.Request{
		Path:       path,
		Content:    content,
		TotalSize:  total,
		Config:     cfg,
		Candidates: candidates,
		TrustBOM:   opts.trustBOM,
	})

	if res.Binary {
		_, err := std.out.Write(res.Output())
		return err
	}
	if opts.encodingInfo {
		fmt.Fprintf(std.err, "encoding: %s (%s)\n", res.Detection.Encoding, res.Detection.Stage)
	}

	if opts.view {
		doc := res.Document
		if doc == nil {
			doc = document.BuildWith(res.Detection.Text, cfg, fonts)
		}
		return view(std, doc, viewLabel(path, res.Detection.Encoding))
	}
	return writeOutput(std, opts.rtfPath, res)
}

// applyFlags lets explicitly set flags override the settings file.
func applyFlags(cmd *cobra.Command, opts options, cfg *config.FormattingConfig) {
	flags := cmd.Flags()
	if flags.Changed("no-numbers") {
		cfg.LineNumbers = !opts.noNumbers
	}
	if flags.Changed("separator") {
		cfg.Separator = opts.separator
	}
	if flags.Changed("min-digits") {
		cfg.MinDigits = opts.minDigits
	}
	if opts.rtfPath != "" {
		cfg.RTF = true
	}
}

func resolveCandidates(names []string, logger *slog.Logger) []textenc.Tag {
	var tags []textenc.Tag
	for _, name := range names {
		tag, ok := textenc.ParseTag(name)
		if !ok {
			logger.Warn("ignoring unknown encoding", "name", name)
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// readInput returns at most limit bytes of the input and the size of the
// whole source. A sample cut short by the limit loses any incomplete UTF-8
// sequence at its end so valid UTF-8 files still validate.
func readInput(stdin io.Reader, path string, limit int64) ([]byte, int64, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if path == "" || path == "-" {
		content, err := fsutil.ReadHead(stdin, limit+1)
		if err != nil {
			return nil, 0, fmt.Errorf("read stdin: %w", err)
		}
		if int64(len(content)) > limit {
			content = trimIncompleteUTF8(content[:limit])
		}
		return content, int64(len(content)), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}
	content, err := fsutil.ReadFileHead(path, limit)
	if err != nil {
		return nil, 0, err
	}
	if info.Size() > int64(len(content)) {
		content = trimIncompleteUTF8(content)
	}
	return content, info.Size(), nil
}

// trimIncompleteUTF8 drops a UTF-8 lead byte and its continuation bytes
// from the end of b when the sequence is missing bytes.
func trimIncompleteUTF8(b []byte) []byte {
	for back := 1; back <= utf8.UTFMax-1 && back <= len(b); back++ {
		c := b[len(b)-back]
		if c&0xC0 == 0x80 {
			continue
		}
		var need int
		switch {
		case c&0xE0 == 0xC0:
			need = 2
		case c&0xF0 == 0xE0:
			need = 3
		case c&0xF8 == 0xF0:
			need = 4
		default:
			return b
		}
		if back < need {
			return b[:len(b)-back]
		}
		return b
	}
	return b
}

func writeOutput(std streams, rtfPath string, res preview.Result) error {
	if res.ExportErr != nil {
		fmt.Fprintf(std.err, "warning: rich text export failed (%v), writing plain text\n", res.ExportErr)
	}
	if rtfPath == "" || rtfPath == "-" || res.RTF == nil {
		_, err := std.out.Write(res.Output())
		return err
	}
	if err := os.WriteFile(rtfPath, res.RTF, 0o644); err != nil {
		return fmt.Errorf("write rtf: %w", err)
	}
	return nil
}

func view(std streams, doc *document.Document, label string) error {
	screen, err := std.screen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	p, err := pager.New(screen, doc, label)
	if err != nil {
		return err
	}
	return p.Run()
}

func viewLabel(path string, enc textenc.Tag) string {
	name := "stdin"
	if path != "" && path != "-" {
		name = filepath.Base(path)
	}
	return name + " [" + enc.String() + "]"
}

func main() {
	// Set UTF-8 as fallback encoding so decoded text displays on terminals
	// with a legacy locale.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newRootCommand(defaultStreams()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

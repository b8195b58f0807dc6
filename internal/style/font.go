package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultFontName is the built-in monospaced font used when a requested
	// font is not registered.
	DefaultFontName = "Go Mono"
	// DefaultFontSize applies when a style asks for a non-positive size.
	DefaultFontSize = 12.0
)

// ErrNoFonts is returned by LoadDir when a directory holds no usable fonts.
var ErrNoFonts = errors.New("no fonts found")

// Font is a resolved face at a concrete point size.
type Font struct {
	// Name is the registered name actually used.
	Name string
	Size float64
	// Substituted is set when the requested font was unavailable.
	Substituted bool

	face *sfnt.Font
}

// Advance returns the horizontal advance of r in points. Runes missing from
// the face measure as the face's notdef glyph.
func (f Font) Advance(r rune) float64 {
	if f.face == nil {
		return 0
	}
	var buf sfnt.Buffer
	idx, err := f.face.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	upem := f.face.UnitsPerEm()
	adv, err := f.face.GlyphAdvance(&buf, idx, fixed.Int26_6(upem<<6), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64 * f.Size / float64(upem)
}

// Registry maps font names to parsed faces. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	faces map[string]registered
}

type registered struct {
	name string
	face *sfnt.Font
}

var builtinFonts = []struct {
	name string
	data []byte
}{
	{DefaultFontName, gomono.TTF},
	{"Go Mono Bold", gomonobold.TTF},
	{"Go Regular", goregular.TTF},
	{"Go Bold", gobold.TTF},
	{"Go Italic", goitalic.TTF},
}

// NewRegistry returns a registry holding the built-in Go fonts.
func NewRegistry() *Registry {
	r := &Registry{faces: make(map[string]registered, len(builtinFonts))}
	for _, b := range builtinFonts {
		face, err := sfnt.Parse(b.data)
		if err != nil {
			panic(fmt.Sprintf("style: parse built-in font %s: %v", b.name, err))
		}
		r.add(b.name, face)
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared registry of built-in fonts.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Names lists the registered font names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.faces))
	for _, f := range r.faces {
		names = append(names, f.name)
	}
	return names
}

// Has reports whether name is registered (case-insensitive).
func (r *Registry) Has(name string) bool {
	_, ok := r.faces[fontKey(name)]
	return ok
}

// Resolve returns the named font at size. Unknown names resolve to
// DefaultFontName and non-positive sizes to DefaultFontSize.
func (r *Registry) Resolve(name string, size float64) Font {
	if size <= 0 {
		size = DefaultFontSize
	}
	if f, ok := r.faces[fontKey(name)]; ok {
		return Font{Name: f.name, Size: size, face: f.face}
	}
	f := r.faces[fontKey(DefaultFontName)]
	return Font{Name: f.name, Size: size, Substituted: true, face: f.face}
}

// LoadDir returns a copy of r extended with every .ttf/.otf font in dir,
// registered under its full name. Unparseable files are skipped.
func (r *Registry) LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read font dir: %w", err)
	}

	out := &Registry{faces: make(map[string]registered, len(r.faces))}
	for k, v := range r.faces {
		out.faces[k] = v
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		face, err := sfnt.Parse(data)
		if err != nil {
			continue
		}
		name, err := face.Name(nil, sfnt.NameIDFull)
		if err != nil || name == "" {
			name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		out.add(name, face)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFonts)
	}
	return out, nil
}

func (r *Registry) add(name string, face *sfnt.Font) {
	r.faces[fontKey(name)] = registered{name: name, face: face}
}

func fontKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

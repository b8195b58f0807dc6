// Package config holds the formatting options shared by the line formatter,
// the styled run builder and the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kk-code-lab/lineview/internal/style"
)

const (
	DefaultMinDigits = 4
	DefaultSeparator = "space"
	DefaultTabValue  = 4.0
)

// ErrUnknownTabMode reports a tab mode string outside the closed set.
var ErrUnknownTabMode = errors.New("unknown tab mode")

// TabMode selects how TabValue is interpreted.
type TabMode int

const (
	// TabCharacterCount measures tabs in multiples of the content font's
	// reference character width.
	TabCharacterCount TabMode = iota
	// TabPoints uses TabValue as an absolute distance in points.
	TabPoints
)

func (m TabMode) String() string {
	switch m {
	case TabPoints:
		return "points"
	default:
		return "characters"
	}
}

// ParseTabMode maps an external setting string onto TabMode.
func ParseTabMode(s string) (TabMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "characters", "character", "chars", "charactercount", "character_count":
		return TabCharacterCount, nil
	case "points", "point", "pt", "pts":
		return TabPoints, nil
	default:
		return TabCharacterCount, fmt.Errorf("%q: %w", s, ErrUnknownTabMode)
	}
}

// FormattingConfig controls numbering and styling of decoded text.
type FormattingConfig struct {
	LineNumbers bool
	// Separator is a free-form token resolved by lines.ResolveSeparator.
	Separator string
	MinDigits int
	// RTF enables the styled document path. It is independent of LineNumbers.
	RTF             bool
	LineNumberStyle style.Spec
	ContentStyle    style.Spec
	TabMode         TabMode
	TabValue        float64
}

var (
	DefaultLineNumberColor = style.RGB{R: 0x80, G: 0x80, B: 0x80}
	DefaultContentColor    = style.RGB{R: 0x00, G: 0x00, B: 0x00}
)

// Default returns the documented defaults.
func Default() FormattingConfig {
	return FormattingConfig{
		LineNumbers: true,
		Separator:   DefaultSeparator,
		MinDigits:   DefaultMinDigits,
		LineNumberStyle: style.Spec{
			FontName:   style.DefaultFontName,
			FontSize:   style.DefaultFontSize,
			Foreground: DefaultLineNumberColor,
		},
		ContentStyle: style.Spec{
			FontName:   style.DefaultFontName,
			FontSize:   style.DefaultFontSize,
			Foreground: DefaultContentColor,
		},
		TabMode:  TabCharacterCount,
		TabValue: DefaultTabValue,
	}
}

// EffectiveMinDigits returns MinDigits, or the default when it is not positive.
func (c FormattingConfig) EffectiveMinDigits() int {
	if c.MinDigits <= 0 {
		return DefaultMinDigits
	}
	return c.MinDigits
}

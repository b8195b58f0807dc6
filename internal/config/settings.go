package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/lineview/internal/style"
)

// StyleSettings is the raw, string-typed form of a style.
type StyleSettings struct {
	Font       string  `yaml:"font"`
	Size       float64 `yaml:"size"`
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"`
}

// Settings is the external configuration as written by users. Pointer fields
// distinguish "unset" from zero values.
type Settings struct {
	LineNumbers     *bool         `yaml:"line_numbers"`
	Separator       *string       `yaml:"separator"`
	MinDigits       *int          `yaml:"min_digits"`
	RTF             *bool         `yaml:"rtf"`
	TabMode         string        `yaml:"tab_mode"`
	TabValue        *float64      `yaml:"tab_value"`
	LineNumberStyle StyleSettings `yaml:"line_number_style"`
	ContentStyle    StyleSettings `yaml:"content_style"`
	Encodings       []string      `yaml:"encodings"`
}

// Load reads settings from a YAML file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings.
func Parse(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Resolve turns raw settings into a FormattingConfig. Unknown or malformed
// values fall back to Default() and are reported on logger at warn level.
func (s Settings) Resolve(logger *slog.Logger) FormattingConfig {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := Default()

	if s.LineNumbers != nil {
		cfg.LineNumbers = *s.LineNumbers
	}
	if s.Separator != nil {
		cfg.Separator = *s.Separator
	}
	if s.MinDigits != nil {
		if *s.MinDigits > 0 {
			cfg.MinDigits = *s.MinDigits
		} else {
			logger.Warn("ignoring non-positive min_digits", "value", *s.MinDigits, "default", DefaultMinDigits)
		}
	}
	if s.RTF != nil {
		cfg.RTF = *s.RTF
	}
	if s.TabMode != "" {
		mode, err := ParseTabMode(s.TabMode)
		if err != nil {
			logger.Warn("ignoring tab_mode", "err", err, "default", cfg.TabMode)
		}
		cfg.TabMode = mode
	}
	if s.TabValue != nil {
		if *s.TabValue > 0 {
			cfg.TabValue = *s.TabValue
		} else {
			logger.Warn("ignoring non-positive tab_value", "value", *s.TabValue, "default", DefaultTabValue)
		}
	}

	cfg.LineNumberStyle = s.LineNumberStyle.resolve(cfg.LineNumberStyle, "line_number_style", logger)
	cfg.ContentStyle = s.ContentStyle.resolve(cfg.ContentStyle, "content_style", logger)
	return cfg
}

func (ss StyleSettings) resolve(def style.Spec, section string, logger *slog.Logger) style.Spec {
	out := def
	if ss.Font != "" {
		out.FontName = ss.Font
	}
	if ss.Size > 0 {
		out.FontSize = ss.Size
	}
	if ss.Foreground != "" {
		out.Foreground = resolveColor(ss.Foreground, def.Foreground, section+".foreground", logger)
	}
	if ss.Background != "" {
		if c, ok := style.ParseHexColor(ss.Background); ok {
			out = out.WithBackground(c)
		} else {
			logger.Warn("ignoring invalid color", "key", section+".background", "value", ss.Background)
		}
	}
	return out
}

func resolveColor(value string, def style.RGB, key string, logger *slog.Logger) style.RGB {
	if _, ok := style.ParseHexColor(value); !ok {
		logger.Warn("invalid color, using default", "key", key, "value", value, "default", def.Hex())
	}
	return style.ResolveColorOrDefault(value, def)
}

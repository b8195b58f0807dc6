package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses "RRGGBB" or "RRGGBBAA" with an optional leading '#'.
// Digits are case-insensitive; the alpha channel is parsed but dropped.
func ParseHexColor(value string) (RGB, bool) {
	value = strings.TrimPrefix(value, "#")
	if len(value) != 6 && len(value) != 8 {
		return RGB{}, false
	}
	packed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	if len(value) == 8 {
		packed >>= 8
	}
	return RGB{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}, true
}

// ResolveColorOrDefault returns the parsed color, or def when value is not a
// valid hex color. Invalid colors never surface as errors.
func ResolveColorOrDefault(value string, def RGB) RGB {
	if c, ok := ParseHexColor(value); ok {
		return c
	}
	return def
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TCell converts the color for terminal rendering.
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

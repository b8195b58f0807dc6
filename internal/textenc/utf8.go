package textenc

// ValidUTF8 reports whether b is structurally valid UTF-8.
// Overlong forms, surrogate code points and values above U+10FFFF are rejected.
func ValidUTF8(b []byte) bool {
	i := 0
	for i < len(b) {
		c := b[i]
		if c <= 0x7F {
			i++
			continue
		}

		var size int
		var cp rune
		switch {
		case c&0xE0 == 0xC0:
			size, cp = 2, rune(c&0x1F)
		case c&0xF0 == 0xE0:
			size, cp = 3, rune(c&0x0F)
		case c&0xF8 == 0xF0:
			size, cp = 4, rune(c&0x07)
		default:
			return false
		}
		if i+size > len(b) {
			return false
		}

		for _, cont := range b[i+1 : i+size] {
			if cont&0xC0 != 0x80 {
				return false
			}
			cp = cp<<6 | rune(cont&0x3F)
		}

		if cp < minCodePoint[size] {
			return false
		}
		if cp >= 0xD800 && cp <= 0xDFFF {
			return false
		}
		if cp > 0x10FFFF {
			return false
		}
		i += size
	}
	return true
}

// minCodePoint is the smallest code point that needs a sequence of the given length.
var minCodePoint = [5]rune{0, 0, 0x80, 0x800, 0x10000}

package fs

import "bytes"

// BOM identifies a byte-order mark at the start of a buffer.
type BOM int

const (
	BOMNone BOM = iota
	BOMUTF32BE
	BOMUTF32LE
	BOMUTF8
	BOMUTF16BE
	BOMUTF16LE
)

var (
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

func (b BOM) String() string {
	switch b {
	case BOMUTF32BE:
		return "UTF-32BE"
	case BOMUTF32LE:
		return "UTF-32LE"
	case BOMUTF8:
		return "UTF-8"
	case BOMUTF16BE:
		return "UTF-16BE"
	case BOMUTF16LE:
		return "UTF-16LE"
	default:
		return "none"
	}
}

// Len reports how many bytes the signature occupies.
func (b BOM) Len() int {
	switch b {
	case BOMUTF32BE, BOMUTF32LE:
		return 4
	case BOMUTF8:
		return 3
	case BOMUTF16BE, BOMUTF16LE:
		return 2
	default:
		return 0
	}
}

// DetectBOM inspects the leading bytes of content for a byte-order mark.
// Longer signatures are checked first: FF FE 00 00 is UTF-32LE, not UTF-16LE.
func DetectBOM(content []byte) BOM {
	switch {
	case bytes.HasPrefix(content, bomUTF32BE):
		return BOMUTF32BE
	case bytes.HasPrefix(content, bomUTF32LE):
		return BOMUTF32LE
	case bytes.HasPrefix(content, bomUTF8):
		return BOMUTF8
	case bytes.HasPrefix(content, bomUTF16BE):
		return BOMUTF16BE
	case bytes.HasPrefix(content, bomUTF16LE):
		return BOMUTF16LE
	default:
		return BOMNone
	}
}

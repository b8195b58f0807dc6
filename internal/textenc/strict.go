package textenc

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

var replacementUTF8 = []byte(string(utf8.RuneError))

// decodeStrict decodes b with tag's codec and reports whether the decode was
// lossless. Unicode encodings are validated structurally. Legacy codecs
// substitute U+FFFD instead of failing, so their output may only contain as
// many replacement characters as the source itself encodes.
func decodeStrict(tag Tag, b []byte) (string, bool) {
	switch tag {
	case UTF8:
		if !ValidUTF8(b) {
			return "", false
		}
		return string(b), true
	case UTF16LE:
		if !validUTF16(b, binary.LittleEndian) {
			return "", false
		}
	case UTF16BE:
		if !validUTF16(b, binary.BigEndian) {
			return "", false
		}
	case UTF32LE:
		if !validUTF32(b, binary.LittleEndian) {
			return "", false
		}
	case UTF32BE:
		if !validUTF32(b, binary.BigEndian) {
			return "", false
		}
	}

	enc := tag.Encoding()
	if enc == nil {
		return "", false
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if tag.isUnicode() {
		return string(out), true
	}
	if bytes.Count(out, replacementUTF8) != encodedReplacements(tag, b) {
		return "", false
	}
	return string(out), true
}

// encodedReplacements counts the U+FFFD characters literally present in b.
// Codecs that cannot represent U+FFFD always yield zero.
func encodedReplacements(tag Tag, b []byte) int {
	seq, err := tag.Encoding().NewEncoder().Bytes(replacementUTF8)
	if err != nil || len(seq) == 0 {
		return 0
	}
	return bytes.Count(b, seq)
}

// validUTF16 checks that b is a whole number of code units with every
// surrogate correctly paired.
func validUTF16(b []byte, order binary.ByteOrder) bool {
	if len(b)%2 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 2 {
		u := order.Uint16(b[i:])
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+4 > len(b) {
				return false
			}
			next := order.Uint16(b[i+2:])
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF:
			return false
		}
	}
	return true
}

// validUTF32 checks that b is a whole number of code units, each a Unicode
// scalar value.
func validUTF32(b []byte, order binary.ByteOrder) bool {
	if len(b)%4 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 4 {
		v := order.Uint32(b[i:])
		if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return false
		}
	}
	return true
}

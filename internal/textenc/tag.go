package textenc

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Tag names one of the candidate encodings the detector can settle on.
type Tag int

const (
	UTF8 Tag = iota
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
	ShiftJIS
	EUCJP
	ISO2022JP
	EUCKR
	GB18030
	Big5
	GB2312
	Windows1252
	MacRoman
)

var tagNames = [...]string{
	UTF8:        "UTF-8",
	UTF16BE:     "UTF-16BE",
	UTF16LE:     "UTF-16LE",
	UTF32BE:     "UTF-32BE",
	UTF32LE:     "UTF-32LE",
	ShiftJIS:    "Shift_JIS",
	EUCJP:       "EUC-JP",
	ISO2022JP:   "ISO-2022-JP",
	EUCKR:       "EUC-KR",
	GB18030:     "GB18030",
	Big5:        "Big5",
	GB2312:      "GB2312",
	Windows1252: "windows-1252",
	MacRoman:    "macintosh",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}
	return tagNames[t]
}

// tagAliases maps lower-cased charset names, including the ones reported by
// the statistical detector, to tags.
var tagAliases = map[string]Tag{
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"utf-16be":     UTF16BE,
	"utf-16le":     UTF16LE,
	"utf-32be":     UTF32BE,
	"utf-32le":     UTF32LE,
	"shift_jis":    ShiftJIS,
	"shift-jis":    ShiftJIS,
	"sjis":         ShiftJIS,
	"euc-jp":       EUCJP,
	"eucjp":        EUCJP,
	"iso-2022-jp":  ISO2022JP,
	"euc-kr":       EUCKR,
	"euckr":        EUCKR,
	"gb18030":      GB18030,
	"gb-18030":     GB18030,
	"big5":         Big5,
	"big-5":        Big5,
	"gb2312":       GB2312,
	"gb-2312":      GB2312,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
	"macintosh":    MacRoman,
	"macroman":     MacRoman,
	"mac-roman":    MacRoman,
}

// ParseTag resolves a charset name to a Tag.
func ParseTag(name string) (Tag, bool) {
	tag, ok := tagAliases[strings.ToLower(strings.TrimSpace(name))]
	return tag, ok
}

// Encoding returns the x/text codec used to decode t.
// UTF8 has no codec; callers treat a nil result as "already UTF-8".
func (t Tag) Encoding() encoding.Encoding {
	switch t {
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case ShiftJIS:
		return japanese.ShiftJIS
	case EUCJP:
		return japanese.EUCJP
	case ISO2022JP:
		return japanese.ISO2022JP
	case EUCKR:
		return korean.EUCKR
	case GB18030:
		return simplifiedchinese.GB18030
	case Big5:
		return traditionalchinese.Big5
	case GB2312:
		// GBK is a strict superset of GB2312.
		return simplifiedchinese.GBK
	case Windows1252:
		return charmap.Windows1252
	case MacRoman:
		return charmap.Macintosh
	default:
		return nil
	}
}

// DefaultCandidates is the candidate set handed to the statistical stage
// when the caller does not supply one.
var DefaultCandidates = []Tag{UTF8, UTF16LE, UTF16BE, UTF32LE, UTF32BE, ISO2022JP, EUCJP, ShiftJIS}

// FallbackChain lists the codecs tried by brute force, strictest regional
// encodings first so permissive single-byte charsets cannot shadow them.
var FallbackChain = []Tag{ISO2022JP, EUCJP, ShiftJIS, EUCKR, GB18030, Big5, GB2312, Windows1252, MacRoman}

func (t Tag) isUnicode() bool {
	switch t {
	case UTF8, UTF16BE, UTF16LE, UTF32BE, UTF32LE:
		return true
	}
	return false
}

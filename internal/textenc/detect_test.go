package textenc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestValidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  bool
	}{
		{name: "empty", input: nil, want: true},
		{name: "ascii", input: []byte("hello\tworld\n"), want: true},
		{name: "two byte", input: []byte("é"), want: true},
		{name: "three byte", input: []byte("€"), want: true},
		{name: "four byte", input: []byte{0xF0, 0x9F, 0x98, 0x80}, want: true},
		{name: "max code point", input: []byte{0xF4, 0x8F, 0xBF, 0xBF}, want: true},
		{name: "overlong two byte", input: []byte{0xC0, 0x80}, want: false},
		{name: "overlong two byte C1", input: []byte{0xC1, 0xBF}, want: false},
		{name: "overlong three byte", input: []byte{0xE0, 0x80, 0x80}, want: false},
		{name: "overlong four byte", input: []byte{0xF0, 0x80, 0x80, 0x80}, want: false},
		{name: "surrogate", input: []byte{0xED, 0xA0, 0x80}, want: false},
		{name: "above max", input: []byte{0xF4, 0x90, 0x80, 0x80}, want: false},
		{name: "truncated", input: []byte{0xE2, 0x82}, want: false},
		{name: "bad continuation", input: []byte{0xE2, 0x28, 0xA1}, want: false},
		{name: "lone continuation", input: []byte{0x80}, want: false},
		{name: "five byte lead", input: []byte{0xF8, 0x88, 0x80, 0x80, 0x80}, want: false},
		{name: "latin1 byte", input: []byte("caf\xe9"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUTF8(tt.input); got != tt.want {
				t.Fatalf("ValidUTF8(% X) = %v, want %v", tt.input, got, tt.want)
			}
			if got := utf8.Valid(tt.input); got != tt.want {
				t.Fatalf("utf8.Valid disagrees on % X: %v", tt.input, got)
			}
		})
	}
}

func TestDetectBOMEncodings(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Tag
		text  string
	}{
		{name: "utf16le", input: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, want: UTF16LE, text: "hi"},
		{name: "utf16be", input: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}, want: UTF16BE, text: "hi"},
		{name: "utf32le", input: []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00, 0x00, 0x00}, want: UTF32LE, text: "h"},
		{name: "utf32be", input: []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 'h'}, want: UTF32BE, text: "h"},
		{name: "utf8", input: []byte{0xEF, 0xBB, 0xBF, 'a', 'b', 'c'}, want: UTF8, text: "abc"},
		{name: "bom only", input: []byte{0xEF, 0xBB, 0xBF}, want: UTF8, text: ""},
		{name: "utf16le replacement char", input: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00, 0xFD, 0xFF}, want: UTF16LE, text: "hi\uFFFD"},
		{name: "utf16be replacement char", input: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i', 0xFF, 0xFD}, want: UTF16BE, text: "hi\uFFFD"},
		{name: "utf32le replacement char", input: []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00, 0x00, 0x00, 0xFD, 0xFF, 0x00, 0x00}, want: UTF32LE, text: "h\uFFFD"},
		{name: "utf32be replacement char", input: []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0x00, 'h', 0x00, 0x00, 0xFF, 0xFD}, want: UTF32BE, text: "h\uFFFD"},
		{name: "utf8 replacement char", input: []byte{0xEF, 0xBB, 0xBF, 'h', 0xEF, 0xBF, 0xBD}, want: UTF8, text: "h\uFFFD"},
		{name: "utf16le surrogate pair", input: []byte{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE}, want: UTF16LE, text: "😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.input)
			if res.Encoding != tt.want {
				t.Fatalf("Detect encoding = %v, want %v", res.Encoding, tt.want)
			}
			if res.Text != tt.text {
				t.Fatalf("Detect text = %q, want %q", res.Text, tt.text)
			}
			if !res.BOMStripped || res.Stage != StageBOM {
				t.Fatalf("expected BOM stage with stripped BOM, got %+v", res)
			}
		})
	}
}

func TestDetectBrokenBOMFallsThrough(t *testing.T) {
	// Odd-length UTF-16 payload cannot decode cleanly.
	input := []byte{0xFF, 0xFE, 'h'}
	res := Detect(input)
	if res.Stage == StageBOM || res.BOMStripped {
		t.Fatalf("broken BOM payload must not short-circuit, got %+v", res)
	}
	if !strings.Contains(res.Text, "h") {
		t.Fatalf("expected original bytes to be decoded, got %q", res.Text)
	}
}

func TestDetectMalformedUnicodeBOMFallsThrough(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "utf16le lone high surrogate", input: []byte{0xFF, 0xFE, 'a', 0x00, 0x3D, 0xD8}},
		{name: "utf16be lone low surrogate", input: []byte{0xFE, 0xFF, 0xDE, 0x00, 0x00, 'a'}},
		{name: "utf32le above max", input: []byte{0xFF, 0xFE, 0x00, 0x00, 0x00, 0x00, 0x11, 0x00}},
		{name: "utf32be surrogate", input: []byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0xD8, 0x00}},
		{name: "utf32le short unit", input: []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := Detect(tt.input); res.Stage == StageBOM {
				t.Fatalf("malformed payload accepted at BOM stage: %+v", res)
			}
		})
	}
}

func TestDetectStrictUTF8(t *testing.T) {
	res := Detect([]byte("héllo wörld"))
	if res.Encoding != UTF8 || res.Stage != StageUTF8 {
		t.Fatalf("expected strict UTF-8 stage, got %+v", res)
	}
	if res.Text != "héllo wörld" {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

func TestDetectEmptySample(t *testing.T) {
	res := Detect(nil)
	if res.Encoding != UTF8 || res.Text != "" {
		t.Fatalf("empty sample should decode to empty UTF-8, got %+v", res)
	}
}

func TestDetectJapaneseEncodings(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Tag
	}{
		{name: "shift_jis", input: []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}, want: ShiftJIS},
		{name: "euc-jp", input: []byte{0xC6, 0xFC, 0xCB, 0xDC, 0xB8, 0xEC}, want: EUCJP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.input)
			if res.Encoding != tt.want {
				t.Fatalf("Detect encoding = %v, want %v", res.Encoding, tt.want)
			}
			if res.Text != "日本語" {
				t.Fatalf("Detect text = %q, want %q", res.Text, "日本語")
			}
		})
	}
}

func TestDetectFallbackChainWindows1252(t *testing.T) {
	res := Detect([]byte("caf\xe9"))
	if res.Encoding != Windows1252 || res.Stage != StageFallback {
		t.Fatalf("expected windows-1252 fallback, got %+v", res)
	}
	if res.Text != "café" {
		t.Fatalf("Detect text = %q, want %q", res.Text, "café")
	}
}

func TestDetectCandidatesRestrictStatisticalStage(t *testing.T) {
	res := Detect([]byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}, WithCandidates(UTF8))
	if res.Stage != StageFallback || res.Encoding != ShiftJIS {
		t.Fatalf("expected Shift_JIS from the fallback chain, got %+v", res)
	}
}

func TestDetectLogsStageDecisions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Detect([]byte("plain"), WithLogger(logger))
	if !strings.Contains(buf.String(), "stage=utf8") {
		t.Fatalf("expected stage decision in log, got %q", buf.String())
	}
}

func TestDecodeLossyReplacesInvalidBytes(t *testing.T) {
	got := decodeLossy([]byte("a\xffb\xc3"))
	want := "a�b�"
	if got != want {
		t.Fatalf("decodeLossy = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("decodeLossy produced invalid UTF-8")
	}
}

func TestDecodeStrictRejectsReplacement(t *testing.T) {
	if _, ok := decodeStrict(ShiftJIS, []byte{0x93}); ok {
		t.Fatalf("truncated Shift_JIS lead byte should fail strict decode")
	}
	if text, ok := decodeStrict(UTF16LE, []byte{'o', 0x00, 'k', 0x00}); !ok || text != "ok" {
		t.Fatalf("decodeStrict(UTF16LE) = %q, %v", text, ok)
	}
	if _, ok := decodeStrict(GB18030, []byte{'a', 0x81}); ok {
		t.Fatalf("truncated GB18030 sequence should fail strict decode")
	}
}

func TestDecodeStrictKeepsEncodedReplacement(t *testing.T) {
	src, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("中\uFFFD"))
	if err != nil {
		t.Fatalf("encode GB18030: %v", err)
	}
	text, ok := decodeStrict(GB18030, src)
	if !ok || text != "中\uFFFD" {
		t.Fatalf("decodeStrict(GB18030) = %q, %v", text, ok)
	}

	// A literal U+FFFD does not excuse a second, substituted one.
	if _, ok := decodeStrict(GB18030, append(src, 0x81)); ok {
		t.Fatalf("substituted replacement must still fail strict decode")
	}
}

func TestParseTag(t *testing.T) {
	tests := map[string]Tag{
		"UTF-8":        UTF8,
		"Shift_JIS":    ShiftJIS,
		"GB-18030":     GB18030,
		"euc-kr":       EUCKR,
		"windows-1252": Windows1252,
		" Big5 ":       Big5,
	}
	for name, want := range tests {
		got, ok := ParseTag(name)
		if !ok || got != want {
			t.Fatalf("ParseTag(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseTag("ISO-8859-1"); ok {
		t.Fatalf("ISO-8859-1 is not a candidate encoding")
	}
}

func TestTagString(t *testing.T) {
	if UTF16LE.String() != "UTF-16LE" {
		t.Fatalf("unexpected name %q", UTF16LE.String())
	}
	if Tag(99).String() != "unknown" {
		t.Fatalf("out-of-range tag should be unknown")
	}
	for _, tag := range FallbackChain {
		if tag.Encoding() == nil {
			t.Fatalf("fallback tag %v has no codec", tag)
		}
	}
}

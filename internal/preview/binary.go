package preview

import (
	"fmt"
	"strings"
)

const (
	binaryPreviewMaxBytes  = 1024
	binaryPreviewLineWidth = 16
)

// BinaryPreview is a hex dump of the head of a binary sample.
type BinaryPreview struct {
	Lines      []string
	ByteCount  int
	TotalBytes int64
}

func (p BinaryPreview) String() string {
	if len(p.Lines) == 0 {
		return ""
	}
	return strings.Join(p.Lines, "\n") + "\n"
}

func formatBinaryPreview(content []byte, totalSize int64) BinaryPreview {
	if len(content) == 0 {
		return BinaryPreview{TotalBytes: totalSize}
	}
	if len(content) > binaryPreviewMaxBytes {
		content = content[:binaryPreviewMaxBytes]
	}

	out := make([]string, 0, len(content)/binaryPreviewLineWidth+2)
	for offset := 0; offset < len(content); offset += binaryPreviewLineWidth {
		end := min(offset+binaryPreviewLineWidth, len(content))
		out = append(out, formatHexLine(offset, content[offset:end]))
	}
	if int64(len(content)) < totalSize {
		out = append(out, fmt.Sprintf("… (%d bytes not shown)", totalSize-int64(len(content))))
	}

	return BinaryPreview{
		Lines:      out,
		ByteCount:  len(content),
		TotalBytes: totalSize,
	}
}

func formatHexLine(offset int, chunk []byte) string {
	var b strings.Builder
	b.Grow(80)
	fmt.Fprintf(&b, "%08X  ", offset)

	for i := 0; i < binaryPreviewLineWidth; i++ {
		if i < len(chunk) {
			fmt.Fprintf(&b, "%02X ", chunk[i])
		} else {
			b.WriteString("   ")
		}
		if i == 7 {
			b.WriteByte(' ')
		}
	}

	b.WriteString(" |")
	for _, c := range chunk {
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteString(strings.Repeat(" ", binaryPreviewLineWidth-len(chunk)))
	b.WriteByte('|')
	return b.String()
}

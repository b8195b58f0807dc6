package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SampleSize bounds how many leading bytes the classifier inspects.
	SampleSize = 8192

	suspiciousThresholdPercent = 30
)

// Class is the outcome of text/binary classification.
type Class int

const (
	ClassText Class = iota
	ClassBinary
)

func (c Class) String() string {
	if c == ClassBinary {
		return "binary"
	}
	return "text"
}

var binaryExtensions = map[string]struct{}{
	".7z":    {},
	".apk":   {},
	".avi":   {},
	".bin":   {},
	".bmp":   {},
	".bz2":   {},
	".class": {},
	".dll":   {},
	".dylib": {},
	".exe":   {},
	".flac":  {},
	".gif":   {},
	".gz":    {},
	".ico":   {},
	".iso":   {},
	".jar":   {},
	".jpeg":  {},
	".jpg":   {},
	".mkv":   {},
	".mov":   {},
	".mp3":   {},
	".mp4":   {},
	".ogg":   {},
	".otf":   {},
	".pdf":   {},
	".png":   {},
	".so":    {},
	".tar":   {},
	".tgz":   {},
	".ttf":   {},
	".wasm":  {},
	".woff":  {},
	".woff2": {},
	".xz":    {},
	".zip":   {},
}

// ClassifySample decides whether a byte sample is text-like.
// Only the first SampleSize bytes are inspected. A single NUL byte makes the
// sample binary; otherwise it is binary when more than 30% of the bytes are
// control characters other than TAB, LF, FF and CR.
func ClassifySample(sample []byte) Class {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	if len(sample) == 0 {
		return ClassText
	}

	if bytes.IndexByte(sample, 0x00) != -1 {
		return ClassBinary
	}

	suspicious := 0
	for _, b := range sample {
		if isSuspiciousByte(b) {
			suspicious++
		}
	}

	if suspicious*100 > suspiciousThresholdPercent*len(sample) {
		return ClassBinary
	}
	return ClassText
}

// IsTextFile determines if content is text or binary.
// The path (if provided) is used to short-circuit obvious binary extensions before sniffing.
func IsTextFile(path string, content []byte) bool {
	if looksBinaryByExtension(path) {
		return false
	}
	return ClassifySample(content) == ClassText
}

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadHead(f, limit)
}

// ReadHead returns up to limit bytes from r.
func ReadHead(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(r, limit))
}

func looksBinaryByExtension(path string) bool {
	if path == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

func isSuspiciousByte(b byte) bool {
	switch b {
	case 0x09, 0x0A, 0x0C, 0x0D:
		return false
	}
	return b < 0x20
}

package pixedit

import (
	"bufio"
	"errors"
	"io"
)

// ErrUnsupportedFormat is returned when uploaded bytes do not start with a
// known raster image signature.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const sniffLen = 16

// DetectFormat checks the magic bytes at the front of r and returns the
// format name without consuming the reader. Only raster image formats the
// session can decode are recognized.
func DetectFormat(br *bufio.Reader) (string, error) {
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	name := sniffFormat(head)
	if name == "" {
		return "", ErrUnsupportedFormat
	}
	return name, nil
}

func sniffFormat(head []byte) string {
	switch {
	case hasPrefix(head, "\x89PNG\r\n\x1a\n"):
		return "png"
	case hasPrefix(head, "\xff\xd8\xff"):
		return "jpeg"
	case hasPrefix(head, "GIF87a"), hasPrefix(head, "GIF89a"):
		return "gif"
	case hasPrefix(head, "BM"):
		return "bmp"
	case len(head) >= 12 && hasPrefix(head, "RIFF") && string(head[8:12]) == "WEBP":
		return "webp"
	}
	return ""
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

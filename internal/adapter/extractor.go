package adapter

import (
	"strings"
	"unicode/utf8"
)

// plainTextExtractor treats the uploaded document as UTF-8 text. Richer
// formats can be supported by swapping in another [TextExtractor]; the import
// flow only sees lines.
type plainTextExtractor struct{}

// NewPlainTextExtractor constructs a [TextExtractor] for plain-text uploads.
func NewPlainTextExtractor() TextExtractor {
	return plainTextExtractor{}
}

// ExtractText implements [TextExtractor]. It rejects documents that are not
// valid UTF-8 or contain no printable content.
func (plainTextExtractor) ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNoTextContent
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoTextContent
	}

	return text, nil
}

package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	rtfControlWords = regexp.MustCompile(`\\[a-z]+\d*[\s\-]?`)
	rtfBraces       = regexp.MustCompile(`[{}]`)
	rtfWhitespace   = regexp.MustCompile(`\s+`)
)

// extractRTF strips RTF control words and group braces after decoding the
// raw bytes (UTF-8, then windows-1256, then latin-1).
func extractRTF(data []byte) (string, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else if decoded, ok := decodeCharmap(data, charmap.Windows1256); ok {
		text = decoded
	} else {
		// latin-1 maps every byte, so this cannot fail
		decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
		text = string(decoded)
	}

	text = rtfControlWords.ReplaceAllString(text, " ")
	text = rtfBraces.ReplaceAllString(text, " ")
	text = rtfWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text), nil
}

package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Call-center exports arrive in a mix of UTF-8 and legacy Windows Persian
// encodings, so plain-text decoding walks an ordered fallback chain and
// takes the first decode that produces no invalid characters.
// cp1256 and windows-1256 are the same table; iso-8859-1 is latin-1.
var fallbackEncodings = []*charmap.Charmap{
	charmap.Windows1256,
	charmap.ISO8859_1,
}

func extractTXT(data []byte) (string, error) {
	return decodeChain(data), nil
}

func extractGeneric(data []byte) (string, error) {
	return decodeChain(data), nil
}

func decodeChain(data []byte) string {
	// UTF-8 first: a strict validity check stands in for decode-or-raise
	// semantics.
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data))
	}

	for _, cm := range fallbackEncodings {
		if text, ok := decodeCharmap(data, cm); ok {
			return strings.TrimSpace(text)
		}
	}

	// Last resort: force UTF-8, replacing invalid bytes.
	return strings.TrimSpace(strings.ToValidUTF8(string(data), string(utf8.RuneError)))
}

// decodeCharmap decodes with a single-byte charmap and reports failure if
// any byte mapped to the replacement rune (an undefined code point).
func decodeCharmap(data []byte, cm *charmap.Charmap) (string, bool) {
	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	text := string(decoded)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}

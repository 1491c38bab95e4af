package extractor

import (
	"fmt"
	"strings"

	"github.com/amiralikarma0098/noortoos/internal/files"
)

// ExtractionError wraps any failure while pulling text out of an upload.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("خطا در استخراج متن از فایل %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract turns an uploaded file's bytes into plain text, dispatching on
// the declared extension. Unknown extensions fall back to the generic
// multi-encoding text decode.
func Extract(data []byte, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch files.Ext(filename) {
	case "rtf":
		text, err = extractRTF(data)
	case "txt":
		text, err = extractTXT(data)
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "xlsx", "xls":
		text, err = extractExcel(data)
	default:
		text, err = extractGeneric(data)
	}

	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}
	return strings.TrimSpace(text), nil
}

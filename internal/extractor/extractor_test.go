package extractor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ========== plain text decoding ==========

func TestExtract_TXT_UTF8(t *testing.T) {
	text, err := Extract([]byte("گزارش تماس‌های مرکز فروش"), "report.txt")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "گزارش تماس‌های مرکز فروش" {
		t.Errorf("Extract = %q, want original string", text)
	}
}

func TestExtract_TXT_Windows1256RoundTrip(t *testing.T) {
	original := "گزارش تماس مشتری"
	encoded, err := charmap.Windows1256.NewEncoder().Bytes([]byte(original))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	text, extractErr := Extract(encoded, "legacy.txt")
	if extractErr != nil {
		t.Fatalf("Extract failed: %v", extractErr)
	}
	if text != original {
		t.Errorf("round-trip = %q, want %q", text, original)
	}
}

func TestExtract_TXT_Latin1(t *testing.T) {
	original := "café résumé"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(original))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	text, extractErr := Extract(encoded, "notes.txt")
	if extractErr != nil {
		t.Fatalf("Extract failed: %v", extractErr)
	}
	// latin-1 sits after windows-1256 in the chain; both decode these
	// bytes without replacement runes, so the result only needs to be
	// a clean decode.
	if strings.ContainsRune(text, '�') || text == "" {
		t.Errorf("Extract = %q, want clean non-empty decode", text)
	}
}

func TestExtract_UnknownExtensionUsesGenericDecode(t *testing.T) {
	text, err := Extract([]byte("plain content"), "export.dat")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "plain content" {
		t.Errorf("Extract = %q, want 'plain content'", text)
	}
}

func TestDecodeChain_InvalidBytesForcedUTF8(t *testing.T) {
	// 0x81 is undefined in windows-1256; forcing UTF-8 must still return
	// something instead of failing.
	got := decodeChain([]byte{0x81, 0xFF, 0xFE})
	if got == "" {
		t.Error("expected non-empty forced decode")
	}
}

// ========== RTF ==========

func TestExtract_RTF_StripsControlWords(t *testing.T) {
	raw := `{\rtf1\ansi\deff0 {\fonttbl {\f0 Times;}} سلام دنیا}`
	text, err := Extract([]byte(raw), "call.rtf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "سلام دنیا") {
		t.Errorf("Extract = %q, want content to survive", text)
	}
	if strings.ContainsAny(text, "{}\\") {
		t.Errorf("Extract = %q, control characters should be stripped", text)
	}
}

func TestExtract_RTF_CollapsesWhitespace(t *testing.T) {
	text, err := Extract([]byte(`{\rtf1 one    two}`), "x.rtf")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if strings.Contains(text, "  ") {
		t.Errorf("Extract = %q, want collapsed whitespace", text)
	}
}

// ========== Excel ==========

func TestExtract_XLSX_JoinsCells(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "ردیف")
	_ = f.SetCellValue("Sheet1", "B1", "اشتراک")
	_ = f.SetCellValue("Sheet1", "A2", 1)
	_ = f.SetCellValue("Sheet1", "C2", "اتمام کار")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("build fixture: %v", err)
	}

	text, err := Extract(buf.Bytes(), "referrals.xlsx")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), text)
	}
	if lines[0] != "ردیف اشتراک" {
		t.Errorf("first row = %q, want cells joined with spaces", lines[0])
	}
	if !strings.Contains(lines[1], "اتمام کار") {
		t.Errorf("second row = %q, want status cell present", lines[1])
	}
}

func TestExtract_XLSX_InvalidData(t *testing.T) {
	if _, err := Extract([]byte("not a workbook"), "bad.xlsx"); err == nil {
		t.Error("expected error for invalid workbook bytes")
	}
}

// ========== PDF ==========

func TestExtract_PDF_InvalidData(t *testing.T) {
	_, err := Extract([]byte("definitely not a pdf"), "bad.pdf")
	if err == nil {
		t.Fatal("expected error for invalid pdf bytes")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("error type = %T, want *ExtractionError", err)
	}
}

// ========== DOCX paragraph splitting ==========

func TestSplitDocxParagraphs(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>hello</w:t></w:r></w:p><w:p><w:r><w:t>world</w:t></w:r></w:p></w:body>`
	paras := splitDocxParagraphs(xml)
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if paras[0] != "hello" || paras[1] != "world" {
		t.Errorf("paragraphs = %v, want [hello world]", paras)
	}
}

func TestStripTags_BasicXML(t *testing.T) {
	got := stripTags("<w:t>Hello</w:t> <w:t>World</w:t>")
	if got != "Hello World" {
		t.Errorf("stripTags = %q, want 'Hello World'", got)
	}
}

func TestStripTags_NoTags(t *testing.T) {
	if got := stripTags("Just plain text"); got != "Just plain text" {
		t.Errorf("stripTags = %q", got)
	}
}

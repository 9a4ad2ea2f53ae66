package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxDocumentBytes bounds how much of any single document is read
const maxDocumentBytes = 20 << 20

var (
	// ErrUnreadableDocument is returned when a document cannot be decoded
	ErrUnreadableDocument = errors.New("unreadable document")

	xmlTag = regexp.MustCompile(`<[^>]+>`)
)

// ExtractText returns the plain text of a resume or job description file.
// .txt, .docx and .pdf are decoded by format; anything else is read as text.
// Any failure yields "" so callers can fall back without error handling.
func ExtractText(path string) string {
	text, err := ReadDocument(path)
	if err != nil {
		return ""
	}
	return text
}

// ReadDocument is ExtractText with the error kept
func ReadDocument(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docxText(data)
	case ".pdf":
		return pdfText(data)
	default:
		// invalid UTF-8 is dropped rather than failing the read
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, maxDocumentBytes))
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %w", ErrUnreadableDocument, err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: docx: %w", ErrUnreadableDocument, err)
		}
		defer func() { _ = rc.Close() }()

		docXML, err := io.ReadAll(io.LimitReader(rc, maxDocumentBytes))
		if err != nil {
			return "", fmt.Errorf("%w: docx: %w", ErrUnreadableDocument, err)
		}
		return wordXMLText(string(docXML)), nil
	}
	return "", fmt.Errorf("%w: docx: no word/document.xml part", ErrUnreadableDocument)
}

// wordXMLText flattens WordprocessingML to text, one paragraph per line
func wordXMLText(docXML string) string {
	docXML = strings.NewReplacer("</w:p>", "\n", "<w:tab/>", "\t", "<w:br/>", "\n").Replace(docXML)
	text := xmlTag.ReplaceAllString(docXML, "")
	text = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'").Replace(text)
	return CleanText(text)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %w", ErrUnreadableDocument, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %w", ErrUnreadableDocument, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf: %w", ErrUnreadableDocument, err)
	}
	return CleanText(buf.String()), nil
}

// Package extract converts stored PDF and DOCX artifacts into plain text and
// rebuilds DOCX artifacts from plain text. Parse failures surface as
// *ExtractionError carrying the underlying cause; anything outside the
// supported formats fails with ErrUnsupportedFormat.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a file extension outside {pdf, docx}.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps a per-format parse failure.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error extracting text from %s: %v", strings.ToUpper(e.Format), e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Ext returns the lowercased extension of name without the leading dot.
func Ext(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Text extracts plain text from the named artifact, dispatching on its
// extension. PDF pages and DOCX paragraphs are joined with newline
// separators.
func Text(name string, data []byte) (string, error) {
	switch ext := Ext(name); ext {
	case "pdf":
		return pdfText(data)
	case "docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

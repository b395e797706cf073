package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfText returns the concatenated per-page text of a PDF, pages separated
// by newlines. The document is structurally validated with pdfcpu first so
// corrupt uploads fail with a useful cause instead of garbled output.
func pdfText(data []byte) (text string, err error) {
	if _, cntErr := api.PageCount(bytes.NewReader(data), nil); cntErr != nil {
		return "", &ExtractionError{Format: "pdf", Err: cntErr}
	}

	// The text decoder panics on some malformed font dictionaries; convert
	// that into the same error path as a regular parse failure.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: "pdf", Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: "pdf", Err: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

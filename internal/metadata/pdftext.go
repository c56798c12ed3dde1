package metadata

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxScanPages bounds how much of a PDF the extractor reads. The
// bibliographic front matter is on the first pages.
const MaxScanPages = 3

// ExtractFromFile reads the PDF at filePath and runs the heuristics
// over its leading pages. Errors opening or parsing the PDF propagate;
// callers treat them as "leave fields blank", never as an upload
// failure.
func ExtractFromFile(filePath string) (Metadata, error) {
	text, err := extractText(filePath, MaxScanPages)
	if err != nil {
		return Metadata{}, err
	}
	return Extract(text), nil
}

// extractText extracts plain text from the first maxPages of a PDF.
func extractText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

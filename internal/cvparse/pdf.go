package cvparse

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF file, page by page. Pages
// that fail to decode are skipped; a document with no recoverable text at
// all is an error.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &ExtractError{Path: path, Message: "file not readable", Cause: err}
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", &ExtractError{Path: path, Message: "no text content found in PDF"}
	}
	return text, nil
}

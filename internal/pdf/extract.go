// Package pdf extracts plain text from PDF files page by page.
package pdf

import (
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// Page holds the extracted text of a single page.
type Page struct {
	Number int
	Text   string
}

// Extract reads the PDF at path and returns the text of every page in
// order. A page whose content stream cannot be decoded yields an empty
// Text rather than failing the whole file.
func Extract(path string) ([]Page, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		pages = append(pages, Page{Number: i, Text: pageText(r, i)})
	}
	return pages, nil
}

// pageText pulls the plain text of one page. The underlying parser
// panics on some malformed content streams, so both the panic and the
// error path collapse to an empty string.
func pageText(r *lpdf.Reader, num int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()
	p := r.Page(num)
	if p.V.IsNull() {
		return ""
	}
	s, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return s
}

// Join flattens pages into a single string with a marker line between
// pages, so page boundaries survive into the indexed content.
func Join(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "\n--- Page %d ---\n%s", p.Number, p.Text)
	}
	return b.String()
}

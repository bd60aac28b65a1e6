package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoPages is returned for documents without any pages.
var ErrNoPages = errors.New("PDF has no pages")

// PageBreak separates pages in text that was extracted client-side.
const PageBreak = "\n---PAGE_BREAK---\n"

// ExtractText reads a PDF file and returns the text of each page in
// document order. Pages whose text cannot be read come back empty.
func ExtractText(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("failed to open PDF %q: %w", filePath, err)
	}
	defer f.Close()

	return extractPages(r)
}

// ExtractReader is ExtractText for an in-memory or uploaded document.
func ExtractReader(ra io.ReaderAt, size int64) ([]string, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return extractPages(r)
}

// SplitPages splits pre-extracted text on PageBreak, dropping blank pages.
func SplitPages(text string) []string {
	var pages []string
	for _, page := range strings.Split(text, PageBreak) {
		if strings.TrimSpace(page) != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

func extractPages(r *pdf.Reader) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, ErrNoPages
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text := pageByRow(page)
		if text == "" {
			text = pagePlainText(page)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageByRow rebuilds lines from the library's row grouping, which keeps
// a transaction's columns on one line.
func pageByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var words []string
		for _, word := range row.Content {
			words = append(words, word.S)
		}
		lines = append(lines, strings.TrimSpace(strings.Join(words, " ")))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func pagePlainText(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// Exists reports whether filePath names a readable regular file.
func Exists(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("input file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %q is a directory", filePath)
	}
	return nil
}

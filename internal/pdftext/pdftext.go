// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts per-page plain text from PDF files. Extraction
// is best-effort: a page without extractable text (scanned or image-only)
// yields an empty string, and only a file that cannot be read as a PDF at
// all fails.
package pdftext

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds extraction for very long PDFs.
const DefaultMaxPages = 30

// Document is the extracted content of one PDF file.
type Document struct {
	// Pages holds the plain text of each extracted page, in order.
	Pages []string

	// PageCount is the true page count of the PDF, which may exceed
	// len(Pages) when the MaxPages cap applied.
	PageCount int

	// Title and Author come from the PDF metadata dictionary, when present.
	Title  string
	Author string
}

// ExtractionError reports a file that could not be processed as a PDF.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor produces a Document from a file path. The interface lets the
// store loader run against a stub in tests.
type Extractor interface {
	Extract(path string) (Document, error)
}

// FileExtractor extracts text with the ledongthuc/pdf library.
type FileExtractor struct {
	// MaxPages caps how many pages are extracted. Zero means DefaultMaxPages.
	MaxPages int
}

// Extract opens the PDF at path and returns its per-page text and metadata.
// Failures to extract a single page degrade to an empty page, not an error;
// a file that is not a valid PDF returns an *ExtractionError.
func (x *FileExtractor) Extract(path string) (doc Document, err error) {
	// The parser panics on some malformed files; fold that into the
	// same error the caller already handles.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Path: path, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return Document{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	doc.PageCount = reader.NumPage()

	maxPages := x.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	n := doc.PageCount
	if n > maxPages {
		n = maxPages
	}

	doc.Pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		doc.Pages = append(doc.Pages, text)
	}

	doc.Title, doc.Author = metadata(reader)
	return doc, nil
}

// metadata reads Title and Author from the document information dictionary.
func metadata(reader *pdflib.Reader) (title, author string) {
	defer func() {
		// Trailer access can panic on odd files; metadata is optional.
		recover()
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return "", ""
	}
	if v := info.Key("Title"); !v.IsNull() {
		title = v.Text()
	}
	if v := info.Key("Author"); !v.IsNull() {
		author = v.Text()
	}
	return title, author
}

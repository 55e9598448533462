// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research agent:
// configuration, loaded papers, search entries, and verification reports.
package types

import (
	"fmt"
	"strings"
)

// Paper is one loaded PDF: its identity, per-page extracted text, and
// source path. Papers are immutable once loaded; a folder load replaces
// the whole set.
type Paper struct {
	// ID is derived from the filename without the .pdf extension, made
	// unique within a loaded set.
	ID string `json:"id" yaml:"id"`

	// Path is the source file path the paper was extracted from.
	Path string `json:"path" yaml:"path"`

	// Title is the PDF metadata title, when present.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author is the PDF metadata author, when present.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Pages holds the extracted plain text, one entry per page. An entry
	// may be empty when a page carries no extractable text.
	Pages []string `json:"pages" yaml:"pages"`

	// PageCount is the true page count of the PDF, which may exceed
	// len(Pages) when extraction was capped.
	PageCount int `json:"page_count" yaml:"page_count"`
}

// Text returns the concatenated page text with page markers, so a provider
// can attribute evidence to a page.
func (p Paper) Text() string {
	var b strings.Builder
	for i, page := range p.Pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Page %d ---\n", i+1)
		b.WriteString(page)
	}
	return b.String()
}

// PaperInfo is the listing view of a loaded paper.
type PaperInfo struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	PageCount int    `json:"page_count" yaml:"page_count"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractMissingFile(t *testing.T) {
	x := &FileExtractor{}
	_, err := x.Extract(filepath.Join(t.TempDir(), "no-such.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("error type = %T, want *ExtractionError", err)
	}
	if extErr.Path == "" {
		t.Error("ExtractionError.Path is empty")
	}
}

func TestExtractNotAPDF(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain text", "this is not a pdf"},
		{"empty file", ""},
		{"truncated header", "%PDF-1.4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.pdf")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			x := &FileExtractor{}
			_, err := x.Extract(path)
			if err == nil {
				t.Fatal("expected error for invalid PDF")
			}
			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("error type = %T, want *ExtractionError", err)
			}
		})
	}
}

func TestExtractionErrorMessage(t *testing.T) {
	inner := errors.New("boom")
	err := &ExtractionError{Path: "papers/x.pdf", Err: inner}

	if got := err.Error(); got != "extracting papers/x.pdf: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// FormatSearchTable writes search entries as a human-readable listing.
func FormatSearchTable(entries []types.SearchEntry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "Found %d papers:\n\n", len(entries))
	for i, e := range entries {
		year := "?"
		if e.Year != 0 {
			year = fmt.Sprintf("%d", e.Year)
		}
		fmt.Fprintf(w, "[%d] %s\n", i+1, e.Title)
		fmt.Fprintf(w, "    Authors: %s (%s)\n", formatAuthors(e.Authors), year)
		if e.Venue != "" {
			fmt.Fprintf(w, "    Venue: %s\n", e.Venue)
		}
		if e.Summary != "" {
			fmt.Fprintf(w, "    Summary: %s\n", e.Summary)
		}
		if e.Relevance != "" {
			fmt.Fprintf(w, "    Relevance: %s\n", e.Relevance)
		}
		if e.Link != "" {
			fmt.Fprintf(w, "    Link: %s\n", e.Link)
		}
		fmt.Fprintln(w, strings.Repeat("-", 70))
	}
}

// FormatSearchJSON writes entries as indented JSON.
func FormatSearchJSON(entries []types.SearchEntry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// FormatSearchYAML writes entries as YAML.
func FormatSearchYAML(entries []types.SearchEntry, w io.Writer) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// FormatReport writes a verification report. With structure it prints the
// verdict and per-claim findings followed by the full response; without,
// just the raw text.
func FormatReport(report types.VerificationReport, w io.Writer) {
	if !report.Structured() {
		fmt.Fprintln(w, report.Raw)
		return
	}

	fmt.Fprintf(w, "Overall verdict: %s\n", report.Verdict)
	if len(report.Claims) > 0 {
		fmt.Fprintln(w)
		for i, c := range report.Claims {
			fmt.Fprintf(w, "[%d] %s — %s\n", i+1, c.Claim, c.Verdict)
			if c.Evidence != "" {
				fmt.Fprintf(w, "    Evidence: %q\n", c.Evidence)
			}
		}
	}
	fmt.Fprintf(w, "\n%s\n%s\n", strings.Repeat("-", 70), report.Raw)
}

// FormatPaperList writes the loaded-paper listing.
func FormatPaperList(infos []types.PaperInfo, w io.Writer) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No papers loaded. Use 'folder <path>' first.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-40s  %-6s  %s\n", "#", "ID", "Pages", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for i, info := range infos {
		fmt.Fprintf(w, "%-4d  %-40s  %-6d  %s\n", i+1, truncate(info.ID, 40), info.PageCount, truncate(info.Title, 40))
	}
}

func formatAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return "Unknown"
	case len(authors) > 3:
		return strings.Join(authors[:3], ", ") + " et al."
	default:
		return strings.Join(authors, ", ")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interpret turns free-text provider responses into display-ready
// structures. The upstream format is not contractually guaranteed, so
// every parser here is tolerant: when the expected shape is missing the
// caller gets the raw text back and shows it unmodified. Nothing in this
// package returns an error for unparseable provider output.
package interpret

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Analysis trims the provider's answer for display. The analysis feature
// needs no structural parsing.
func Analysis(raw string) string {
	return strings.TrimSpace(raw)
}

// --- search results ---

// searchItem mirrors the requested JSON layout with tolerant field types:
// authors may arrive as an array or a single string, year as a number or
// a string, and the venue under either "venue" or "journal".
type searchItem struct {
	Title     string      `json:"title"`
	Authors   flexStrings `json:"authors"`
	Year      flexYear    `json:"year"`
	Venue     string      `json:"venue"`
	Journal   string      `json:"journal"`
	Summary   string      `json:"summary"`
	Relevance string      `json:"relevance"`
	Link      string      `json:"link"`
}

// Search extracts the JSON array of paper entries from a search response.
// It reports ok=false when no parseable array is present; the caller then
// presents the raw response instead.
func Search(raw string) ([]types.SearchEntry, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var items []searchItem
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, false
	}

	seen := make(map[string]bool)
	entries := make([]types.SearchEntry, 0, len(items))
	for _, item := range items {
		venue := item.Venue
		if venue == "" {
			venue = item.Journal
		}
		entry := types.SearchEntry{
			Title:     strings.TrimSpace(item.Title),
			Authors:   item.Authors,
			Year:      int(item.Year),
			Venue:     venue,
			Summary:   strings.TrimSpace(item.Summary),
			Relevance: strings.TrimSpace(item.Relevance),
			Link:      strings.TrimSpace(item.Link),
		}
		if entry.Title == "" && entry.Summary == "" {
			continue
		}

		// Providers repeat papers across sources; fold by title.
		key := normalizeTitle(entry.Title)
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}
	return entries, true
}

// flexStrings accepts a JSON array of strings or a single string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		*f = []string{s}
	}
	// Any other shape is ignored rather than failing the whole array.
	return nil
}

// flexYear accepts a JSON number or a string like "2023".
type flexYear int

func (y *flexYear) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*y = flexYear(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*y = flexYear(n)
		}
	}
	return nil
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the
// title for dedup keys.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// --- verification reports ---

// quoteRe matches the first quoted passage in a claim block, straight or
// curly quotes.
var quoteRe = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)

// listPrefixRe strips leading list markers from a claim line.
var listPrefixRe = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s*)+`)

// Verify extracts the overall verdict token and per-claim blocks from a
// verification response. Unrecognized output degrades to VerdictUnknown
// with the raw text preserved; this never fails.
func Verify(raw string) types.VerificationReport {
	report := types.VerificationReport{
		Verdict: detectVerdict(raw),
		Raw:     strings.TrimSpace(raw),
	}

	// Paragraph-level pass: the first verdict-carrying block restates the
	// overall verdict, each later one is read as a claim finding.
	blocks := strings.Split(raw, "\n\n")
	first := true
	for _, block := range blocks {
		verdict := detectVerdict(block)
		if verdict == types.VerdictUnknown {
			continue
		}
		if first {
			first = false
			continue
		}
		report.Claims = append(report.Claims, types.ClaimFinding{
			Claim:    claimText(block),
			Verdict:  verdict,
			Evidence: firstQuote(block),
		})
	}
	return report
}

// detectVerdict finds the first verdict token in s. The qualified tokens
// share the SUPPORTED suffix, so the text before the match decides which
// one it is. A near-token such as UNSUPPORTED or NOT-SUPPORTED is not in
// the vocabulary and maps to VerdictUnknown, never to a guess.
func detectVerdict(s string) types.Verdict {
	u := strings.ToUpper(s)
	idx := tokenIndex(u, "SUPPORTED")
	if idx < 0 {
		return types.VerdictUnknown
	}
	head := u[:idx]
	switch {
	case strings.HasSuffix(head, "PARTIALLY "):
		return types.VerdictPartiallySupported
	case strings.HasSuffix(head, "NOT "):
		return types.VerdictNotSupported
	default:
		return types.VerdictSupported
	}
}

// tokenIndex returns the index of the first standalone occurrence of
// token in u, or -1. An adjacent letter or hyphen disqualifies a match.
func tokenIndex(u, token string) int {
	for from := 0; ; {
		idx := strings.Index(u[from:], token)
		if idx < 0 {
			return -1
		}
		idx += from
		if tokenBoundary(u, idx-1) && tokenBoundary(u, idx+len(token)) {
			return idx
		}
		from = idx + len(token)
	}
}

func tokenBoundary(u string, i int) bool {
	if i < 0 || i >= len(u) {
		return true
	}
	c := u[i]
	if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		return false
	}
	return c != '-'
}

// claimText returns the block's first non-empty line with list markers
// and a trailing verdict annotation removed.
func claimText(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = listPrefixRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Drop an inline verdict tail like ": SUPPORTED".
		u := strings.ToUpper(line)
		for _, token := range []string{"PARTIALLY SUPPORTED", "NOT SUPPORTED", "SUPPORTED"} {
			if idx := tokenIndex(u, token); idx >= 0 {
				line = strings.TrimRight(strings.TrimSpace(line[:idx]), ":-—(")
				line = strings.TrimSpace(line)
				break
			}
		}
		return line
	}
	return ""
}

// firstQuote returns the first quoted passage in the block, if any.
func firstQuote(block string) string {
	m := quoteRe.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the chat requests sent to the provider for the
// three agent features. Builders that attach paper text enforce a size
// budget: each paper is tail-truncated to a per-paper cap, and when the
// assembly still exceeds the total budget, the most recently added papers
// are dropped first and reported to the caller.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Default limits, sized for a 200k-token context window.
const (
	DefaultPerPaperChars = 40000
	DefaultTotalBudget   = 400000
	DefaultMaxPapers     = 10
)

const truncationMarker = "\n... [truncated]"

// Limits bounds the size of assembled prompts.
type Limits struct {
	PerPaperChars int
	TotalBudget   int
	MaxPapers     int
}

// LimitsFromConfig converts PromptConfig, filling zero fields with defaults.
func LimitsFromConfig(cfg types.PromptConfig) Limits {
	l := Limits{
		PerPaperChars: cfg.PerPaperChars,
		TotalBudget:   cfg.TotalBudget,
		MaxPapers:     cfg.MaxPapers,
	}
	if l.PerPaperChars <= 0 {
		l.PerPaperChars = DefaultPerPaperChars
	}
	if l.TotalBudget <= 0 {
		l.TotalBudget = DefaultTotalBudget
	}
	if l.MaxPapers <= 0 {
		l.MaxPapers = DefaultMaxPapers
	}
	return l
}

var searchTmpl = template.Must(template.New("search").Parse(`You are a research assistant helping find academic papers. Search for papers related to:

"{{.Query}}"

Find relevant academic papers from Google Scholar, arXiv, PubMed, Semantic Scholar, or other academic databases.

Provide your findings in this JSON format (output ONLY the JSON array):

[
  {
    "title": "Full paper title",
    "authors": ["Author 1", "Author 2"],
    "year": 2023,
    "venue": "Journal or conference name",
    "summary": "3-4 sentence summary",
    "relevance": "How it relates to the query",
    "link": "URL or DOI"
  }
]

Find 5-8 highly relevant papers. If you cannot find papers, return [].`))

var analysisTmpl = template.Must(template.New("analysis").Parse(`Analyze these papers:

{{.Papers}}

Question: {{.Question}}

Provide a detailed answer citing specific papers. Attribute each claim to
the paper identifiers shown in the === markers, and note where the papers
disagree or are silent.`))

var verifyTmpl = template.Must(template.New("verify").Parse(`Verify if these papers support the claims in this paragraph:

PAPERS:
{{.Papers}}

PARAGRAPH:
{{.Paragraph}}

{{if .Task}}TASK: {{.Task}}

{{end}}For each claim in the paragraph give a verdict token — SUPPORTED, PARTIALLY SUPPORTED, or NOT SUPPORTED — quote the supporting or contradicting passage, and name the source paper and page when identifiable.

Provide:
1. Overall verdict (SUPPORTED/PARTIALLY SUPPORTED/NOT SUPPORTED)
2. Claim-by-claim analysis with evidence
3. Recommendations`))

// BuildSearch wraps a literature-search query with the instruction
// envelope. No paper text is attached, so no size limits apply.
func BuildSearch(query string) string {
	return render(searchTmpl, struct{ Query string }{Query: strings.TrimSpace(query)})
}

// BuildAnalysis assembles the analysis request for the given papers and
// question. It returns the prompt and the IDs of any papers dropped to
// stay within the budget; a non-empty list is a warning, not an error.
func BuildAnalysis(question string, papers []types.Paper, lim Limits) (string, []string) {
	build := func(blocks string) string {
		return render(analysisTmpl, struct{ Papers, Question string }{
			Papers:   blocks,
			Question: strings.TrimSpace(question),
		})
	}
	return fitPapers(papers, lim, build)
}

// BuildVerify assembles the citation-verification request. The paragraph
// is the user's text under scrutiny; task is an optional extra instruction.
func BuildVerify(paragraph, task string, papers []types.Paper, lim Limits) (string, []string) {
	build := func(blocks string) string {
		return render(verifyTmpl, struct{ Papers, Paragraph, Task string }{
			Papers:    blocks,
			Paragraph: strings.TrimSpace(paragraph),
			Task:      strings.TrimSpace(task),
		})
	}
	return fitPapers(papers, lim, build)
}

// fitPapers renders the prompt with as many papers as the budget allows.
// Papers beyond MaxPapers are dropped up front; after that the most
// recently added paper is dropped until the rendering fits. Identical
// inputs always produce identical output.
func fitPapers(papers []types.Paper, lim Limits, build func(blocks string) string) (string, []string) {
	var dropped []string

	included := papers
	if len(included) > lim.MaxPapers {
		for _, p := range included[lim.MaxPapers:] {
			dropped = append(dropped, p.ID)
		}
		included = included[:lim.MaxPapers]
	}

	blocks := make([]string, len(included))
	for i, p := range included {
		blocks[i] = paperBlock(p, lim.PerPaperChars)
	}

	for {
		text := build(strings.Join(blocks, "\n\n"))
		if len(text) <= lim.TotalBudget || len(blocks) == 0 {
			return text, dropped
		}
		last := len(blocks) - 1
		dropped = append(dropped, included[last].ID)
		included = included[:last]
		blocks = blocks[:last]
	}
}

// paperBlock formats one paper as an identifier-delimited block with its
// text tail-truncated to maxChars. The cut backs up to a rune boundary
// so the block never carries invalid UTF-8.
func paperBlock(p types.Paper, maxChars int) string {
	text := p.Text()
	if len(text) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + truncationMarker
	}
	return fmt.Sprintf("=== %s ===\n%s\n=== END ===", p.ID, text)
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates only substitute strings; execution cannot fail.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

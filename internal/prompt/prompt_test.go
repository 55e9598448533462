// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/research-agent/pkg/types"
)

func testPaper(id, text string) types.Paper {
	return types.Paper{ID: id, Pages: []string{text}, PageCount: 1}
}

func testLimits() Limits {
	return Limits{PerPaperChars: 200, TotalBudget: 2000, MaxPapers: 10}
}

func TestBuildSearch(t *testing.T) {
	got := BuildSearch("  microbial fuel cells  ")

	if !strings.Contains(got, `"microbial fuel cells"`) {
		t.Errorf("prompt missing trimmed query:\n%s", got)
	}
	if !strings.Contains(got, "ONLY the JSON array") {
		t.Error("prompt missing JSON-only instruction")
	}
	for _, field := range []string{"title", "authors", "year", "venue", "summary", "relevance", "link"} {
		if !strings.Contains(got, `"`+field+`"`) {
			t.Errorf("prompt missing field %q", field)
		}
	}
}

func TestBuildAnalysisIncludesPapersAndQuestion(t *testing.T) {
	papers := []types.Paper{
		testPaper("Smith2022", "Oxygen penetration depths measured between 1.8 and 5.2 mm"),
		testPaper("Jones2021", "Sediment microbial activity varies seasonally"),
	}

	got, dropped := BuildAnalysis("What are typical oxygen penetration depths?", papers, testLimits())
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v, want none", dropped)
	}

	if !strings.Contains(got, "=== Smith2022 ===") || !strings.Contains(got, "=== Jones2021 ===") {
		t.Errorf("prompt missing paper blocks:\n%s", got)
	}
	if !strings.Contains(got, "--- Page 1 ---") {
		t.Error("prompt missing page markers")
	}
	if !strings.Contains(got, "Question: What are typical oxygen penetration depths?") {
		t.Error("prompt missing question")
	}
}

func TestBuildAnalysisIdempotent(t *testing.T) {
	papers := []types.Paper{
		testPaper("a", strings.Repeat("alpha ", 100)),
		testPaper("b", strings.Repeat("beta ", 100)),
	}

	first, firstDropped := BuildAnalysis("q", papers, testLimits())
	second, secondDropped := BuildAnalysis("q", papers, testLimits())

	if first != second {
		t.Error("identical inputs produced different prompts")
	}
	if len(firstDropped) != len(secondDropped) {
		t.Error("identical inputs produced different drop lists")
	}
}

func TestPerPaperTruncation(t *testing.T) {
	long := strings.Repeat("x", 5000)
	papers := []types.Paper{testPaper("big", long)}

	got, _ := BuildAnalysis("q", papers, testLimits())

	if !strings.Contains(got, "... [truncated]") {
		t.Error("long paper text not marked truncated")
	}
	if strings.Contains(got, long) {
		t.Error("full paper text leaked past the per-paper cap")
	}
}

func TestPerPaperTruncationKeepsValidUTF8(t *testing.T) {
	// Each rune is 3 bytes, so a byte-index cut would land mid-rune for
	// most cap values.
	long := strings.Repeat("日本語テキスト", 200)
	papers := []types.Paper{testPaper("jp", long)}
	lim := Limits{PerPaperChars: 1000, TotalBudget: 100000, MaxPapers: 10}

	got, _ := BuildAnalysis("q", papers, lim)

	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
	if !strings.Contains(got, "... [truncated]") {
		t.Error("long paper text not marked truncated")
	}
}

func TestBudgetNeverExceeded(t *testing.T) {
	lim := Limits{PerPaperChars: 400, TotalBudget: 1500, MaxPapers: 10}

	var papers []types.Paper
	for i := 0; i < 8; i++ {
		papers = append(papers, testPaper(fmt.Sprintf("p%d", i), strings.Repeat("w", 1000)))
	}

	got, dropped := BuildAnalysis("q", papers, lim)
	if len(got) > lim.TotalBudget {
		t.Errorf("prompt length %d exceeds budget %d", len(got), lim.TotalBudget)
	}
	if len(dropped) == 0 {
		t.Error("papers must have been dropped but warning list is empty")
	}

	// Completeness over breadth: the first paper survives, the drop order
	// is newest-first.
	if !strings.Contains(got, "=== p0 ===") {
		t.Error("first paper should be kept")
	}
	if dropped[0] != "p7" {
		t.Errorf("drop order should be last-in-first-dropped, got %v", dropped)
	}
}

func TestMaxPapersCap(t *testing.T) {
	lim := Limits{PerPaperChars: 100, TotalBudget: 100000, MaxPapers: 2}
	papers := []types.Paper{
		testPaper("one", "a"), testPaper("two", "b"), testPaper("three", "c"),
	}

	got, dropped := BuildAnalysis("q", papers, lim)
	if strings.Contains(got, "=== three ===") {
		t.Error("paper beyond MaxPapers included")
	}
	if len(dropped) != 1 || dropped[0] != "three" {
		t.Errorf("dropped = %v, want [three]", dropped)
	}
}

func TestBuildVerify(t *testing.T) {
	papers := []types.Paper{testPaper("Smith2022", "Oxygen penetration depths measured between 1.8 and 5.2 mm")}

	got, dropped := BuildVerify("oxygen penetration depth ranges from 2-5mm", "check the numeric ranges", papers, testLimits())
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v", dropped)
	}

	for _, want := range []string{
		"PAPERS:",
		"PARAGRAPH:\noxygen penetration depth ranges from 2-5mm",
		"TASK: check the numeric ranges",
		"SUPPORTED/PARTIALLY SUPPORTED/NOT SUPPORTED",
		"=== Smith2022 ===",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildVerifyOmitsEmptyTask(t *testing.T) {
	papers := []types.Paper{testPaper("p", "text")}
	got, _ := BuildVerify("claim", "", papers, testLimits())

	if strings.Contains(got, "TASK:") {
		t.Error("empty task should omit the TASK section")
	}
}

func TestLimitsFromConfigDefaults(t *testing.T) {
	lim := LimitsFromConfig(types.PromptConfig{})
	if lim.PerPaperChars != DefaultPerPaperChars || lim.TotalBudget != DefaultTotalBudget || lim.MaxPapers != DefaultMaxPapers {
		t.Errorf("defaults not applied: %+v", lim)
	}

	lim = LimitsFromConfig(types.PromptConfig{PerPaperChars: 9, TotalBudget: 99, MaxPapers: 3})
	if lim.PerPaperChars != 9 || lim.TotalBudget != 99 || lim.MaxPapers != 3 {
		t.Errorf("explicit values overridden: %+v", lim)
	}
}

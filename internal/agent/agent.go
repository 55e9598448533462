// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent wires the paper store, prompt assembler, provider client,
// and response interpreter into the three research features: finding
// papers online, analyzing loaded papers, and verifying citations.
//
// Each feature invocation is one linear assemble → send → interpret
// sequence with no chat history: every exchange carries its full context.
// The Agent is created at startup and holds the only mutable state (the
// store and provider selection) explicitly.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/research-agent/internal/interpret"
	"github.com/pdiddy/research-agent/internal/prompt"
	"github.com/pdiddy/research-agent/internal/provider"
	"github.com/pdiddy/research-agent/internal/store"
	"github.com/pdiddy/research-agent/pkg/types"
)

// ErrNoPapers is returned by Analyze and VerifyCitations when no papers
// are loaded; the check runs before any network call.
var ErrNoPapers = errors.New("no papers loaded: load a folder of PDFs first")

// Agent holds the working state for one session.
type Agent struct {
	Store  *store.Store
	Client provider.Client
	Limits prompt.Limits
}

// New assembles an agent from its collaborators.
func New(st *store.Store, client provider.Client, limits prompt.Limits) *Agent {
	return &Agent{Store: st, Client: client, Limits: limits}
}

// FindResult is the outcome of an online paper search.
type FindResult struct {
	// Entries holds the parsed papers when the response followed the
	// requested layout.
	Entries []types.SearchEntry

	// Raw is the verbatim provider response, always present so the
	// caller can show it when parsing failed.
	Raw string

	// Parsed reports whether Entries came from structured output.
	Parsed bool
}

// Find asks the provider to search academic sources for the query. Web
// search is enabled when the selected provider offers it; otherwise the
// provider answers from its own knowledge and result quality depends on
// the provider chosen.
func (a *Agent) Find(ctx context.Context, query string) (FindResult, error) {
	if strings.TrimSpace(query) == "" {
		return FindResult{}, fmt.Errorf("query is empty")
	}

	p := prompt.BuildSearch(query)
	raw, err := a.Client.SendChat(ctx, p, a.Client.UsesWebSearch())
	if err != nil {
		return FindResult{}, err
	}

	entries, ok := interpret.Search(raw)
	return FindResult{Entries: entries, Raw: raw, Parsed: ok}, nil
}

// AnalyzeResult is the outcome of a local-paper analysis.
type AnalyzeResult struct {
	// Answer is the provider's narrative answer.
	Answer string

	// Dropped lists papers left out of the prompt to fit the budget.
	// Non-empty Dropped is a warning, not a failure.
	Dropped []string
}

// Analyze answers a question over the loaded papers.
func (a *Agent) Analyze(ctx context.Context, question string) (AnalyzeResult, error) {
	if strings.TrimSpace(question) == "" {
		return AnalyzeResult{}, fmt.Errorf("question is empty")
	}
	papers := a.Store.Papers()
	if len(papers) == 0 {
		return AnalyzeResult{}, ErrNoPapers
	}

	p, dropped := prompt.BuildAnalysis(question, papers, a.Limits)
	raw, err := a.Client.SendChat(ctx, p, false)
	if err != nil {
		return AnalyzeResult{}, err
	}

	return AnalyzeResult{Answer: interpret.Analysis(raw), Dropped: dropped}, nil
}

// VerifyResult is the outcome of a citation verification.
type VerifyResult struct {
	Report  types.VerificationReport
	Dropped []string
}

// VerifyCitations checks the paragraph's claims against the loaded
// papers. Task is an optional extra instruction passed through to the
// provider.
func (a *Agent) VerifyCitations(ctx context.Context, paragraph, task string) (VerifyResult, error) {
	if strings.TrimSpace(paragraph) == "" {
		return VerifyResult{}, fmt.Errorf("paragraph is empty")
	}
	papers := a.Store.Papers()
	if len(papers) == 0 {
		return VerifyResult{}, ErrNoPapers
	}

	p, dropped := prompt.BuildVerify(paragraph, task, papers, a.Limits)
	raw, err := a.Client.SendChat(ctx, p, false)
	if err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{Report: interpret.Verify(raw), Dropped: dropped}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import "context"

// Mock is a canned-response client for tests. It records every call so
// tests can assert on the prompts sent and on call counts.
type Mock struct {
	Response  string
	Err       error
	WebSearch bool

	// Calls holds the prompts received, in order.
	Calls []MockCall
}

// MockCall is one recorded SendChat invocation.
type MockCall struct {
	Prompt       string
	UseWebSearch bool
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) UsesWebSearch() bool { return m.WebSearch }

func (m *Mock) SendChat(_ context.Context, prompt string, useWebSearch bool) (string, error) {
	m.Calls = append(m.Calls, MockCall{Prompt: prompt, UseWebSearch: useWebSearch})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Verdict is a citation-verification outcome as emitted by the provider.
// The vocabulary is provider free text, not an enforced enum: an
// unrecognized token maps to VerdictUnknown and the raw response is kept.
type Verdict string

const (
	VerdictSupported          Verdict = "SUPPORTED"
	VerdictPartiallySupported Verdict = "PARTIALLY SUPPORTED"
	VerdictNotSupported       Verdict = "NOT SUPPORTED"
	VerdictUnknown            Verdict = "UNKNOWN"
)

// ClaimFinding is the provider's assessment of a single claim inside the
// verified paragraph.
type ClaimFinding struct {
	// Claim is the claim text as the provider delimited it.
	Claim string `json:"claim" yaml:"claim"`

	// Verdict is the per-claim verdict token, VerdictUnknown when the
	// block carried none.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Evidence is the quoted supporting or contradicting passage.
	Evidence string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// VerificationReport is the interpreted result of a citation-verification
// exchange. Raw always holds the full provider response so the caller can
// fall back to plain display when structured parsing came up short.
type VerificationReport struct {
	// Verdict is the overall verdict for the paragraph.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Claims holds the per-claim findings, possibly empty.
	Claims []ClaimFinding `json:"claims,omitempty" yaml:"claims,omitempty"`

	// Raw is the verbatim provider response.
	Raw string `json:"raw" yaml:"raw"`
}

// Structured reports whether the report carries anything beyond raw text.
func (r VerificationReport) Structured() bool {
	return r.Verdict != VerdictUnknown || len(r.Claims) > 0
}

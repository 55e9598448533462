// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchEntry is one paper in a provider-generated literature search
// response. The provider is asked for a fixed field set; every field is
// best-effort since the upstream format is not contractually guaranteed.
type SearchEntry struct {
	// Title is the full paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year" yaml:"year"`

	// Venue is the journal or conference name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Summary is a short provider-written summary of the paper.
	Summary string `json:"summary" yaml:"summary"`

	// Relevance explains how the paper relates to the query.
	Relevance string `json:"relevance" yaml:"relevance"`

	// Link is a URL or DOI for the paper.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Package scholar retrieves publication versions and citations from
// Google Scholar.
package scholar

import "context"

// Candidate is one discoverable version of a publication in a result set.
//
// Candidates are ephemeral: they exist only while one entry is being
// resolved and are never persisted.
type Candidate struct {
	// Index is the candidate's position in the result set it came from.
	Index int

	// Title is the result title text, without any leading type marker.
	Title string

	// TypeTag is the bracketed marker some results carry before the title,
	// such as "[PDF]" or "[HTML]". Empty for regular results.
	TypeTag string

	// VenueInfo is the free-text publication line (authors, venue, year,
	// host). This is the primary signal for reputation scoring.
	VenueInfo string

	// Snippet is the free-text excerpt shown under the result, possibly empty.
	Snippet string

	// ClusterID identifies the result for citation retrieval. Empty when the
	// result exposes no cite affordance.
	ClusterID string

	// VersionsURL is the "All N versions" link target, empty when the result
	// has no known additional versions.
	VersionsURL string
}

// HasMoreVersions reports whether the provider knows of additional versions
// of this candidate.
func (c Candidate) HasMoreVersions() bool {
	return c.VersionsURL != ""
}

// CombinedText returns the candidate's full textual signal for scoring.
// The type tag is included: a bare "[PDF]" result still scores as a pdf.
func (c Candidate) CombinedText() string {
	text := c.Title + " " + c.VenueInfo + " " + c.Snippet
	if c.TypeTag != "" {
		text = c.TypeTag + " " + text
	}
	return text
}

// Provider is the search capability consumed by the pipeline.
type Provider interface {
	// Search returns candidates for a query, best guess first.
	Search(ctx context.Context, query string) ([]Candidate, error)

	// ExpandVersions returns all known versions of a candidate, in the
	// provider's order.
	ExpandVersions(ctx context.Context, c Candidate) ([]Candidate, error)

	// FetchCitation returns the raw BibTeX text for a candidate.
	FetchCitation(ctx context.Context, c Candidate) (string, error)
}

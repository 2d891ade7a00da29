package selector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fixbib/fixbib/internal/scholar"
)

// snippetLimit truncates candidate snippets in the ranking prompt.
const snippetLimit = 200

// selectByLLM asks the configured LLM to pick a candidate index.
//
// Any failure (transport error, off-format answer, out-of-range index) is
// returned as an error so the caller falls back to rule-based scoring; this
// path never yields an out-of-bounds selection.
func (s *Selector) selectByLLM(ctx context.Context, candidates []scholar.Candidate) (int, error) {
	max := s.MaxCandidates
	if max <= 0 {
		max = DefaultMaxCandidates
	}
	window := candidates
	if len(window) > max {
		window = window[:max]
	}

	resp, err := s.LLM.Complete(ctx, buildRankPrompt(window))
	if err != nil {
		return 0, fmt.Errorf("ranking completion: %w", err)
	}

	idx, err := parseIndex(resp)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(window) {
		return 0, fmt.Errorf("index %d out of range [0, %d)", idx, len(window))
	}
	return idx, nil
}

// buildRankPrompt enumerates candidates and asks for a bare numeric index.
func buildRankPrompt(candidates []scholar.Candidate) string {
	var b strings.Builder
	b.WriteString("You are choosing the most reputable published version of an academic work.\n")
	b.WriteString("Prefer, in order: peer-reviewed venues (journals, ACM/IEEE, major conferences), ")
	b.WriteString("then workshop or proceedings versions, then preprint servers such as arXiv, ")
	b.WriteString("then unknown or personal sources.\n\n")
	b.WriteString("Candidates:\n")

	for i, c := range candidates {
		snippet := c.Snippet
		if snippet == "" {
			snippet = "(no excerpt)"
		} else if r := []rune(snippet); len(r) > snippetLimit {
			snippet = string(r[:snippetLimit])
		}
		fmt.Fprintf(&b, "[%d] %s\n    Publication info: %s\n    Excerpt: %s\n", i, c.Title, c.VenueInfo, snippet)
	}

	b.WriteString("\nAnswer with only the numeric index of the best candidate.")
	return b.String()
}

// parseIndex extracts the first run of decimal digits from a response.
func parseIndex(resp string) (int, error) {
	start := -1
	for i, r := range resp {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return strconv.Atoi(resp[start:i])
		}
	}
	if start >= 0 {
		return strconv.Atoi(resp[start:])
	}
	return 0, fmt.Errorf("no index in response %q", truncateForError(resp))
}

func truncateForError(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Package selector chooses the most reputable version among search
// candidates.
package selector

import (
	"context"
	"log"

	"github.com/fixbib/fixbib/internal/llm"
	"github.com/fixbib/fixbib/internal/reputation"
	"github.com/fixbib/fixbib/internal/scholar"
)

// DefaultMaxCandidates caps how many candidates the LLM prompt enumerates.
const DefaultMaxCandidates = 10

// Selector picks one candidate from a result set.
//
// When an LLM provider is configured it is tried first; any failure there
// falls back to deterministic reputation scoring. The selector holds no
// per-entry state.
type Selector struct {
	Table reputation.Table
	LLM   llm.Provider // nil disables LLM-assisted selection

	// MaxCandidates bounds the window considered by the LLM prompt.
	// Zero means DefaultMaxCandidates.
	MaxCandidates int
}

// New creates a Selector with the given reputation table and optional LLM.
func New(table reputation.Table, provider llm.Provider) *Selector {
	return &Selector{Table: table, LLM: provider, MaxCandidates: DefaultMaxCandidates}
}

// Select returns the chosen candidate. The second return is false only when
// candidates is empty.
func (s *Selector) Select(ctx context.Context, candidates []scholar.Candidate) (scholar.Candidate, bool) {
	switch len(candidates) {
	case 0:
		return scholar.Candidate{}, false
	case 1:
		return candidates[0], true
	}

	if s.LLM != nil {
		if idx, err := s.selectByLLM(ctx, candidates); err == nil {
			log.Printf("selector llm_pick index=%d title=%q", idx, candidates[idx].Title)
			return candidates[idx], true
		} else {
			log.Printf("selector llm_fallback err=%v", err)
		}
	}

	chosen, score := s.selectByScore(candidates)
	log.Printf("selector score_pick index=%d score=%d title=%q", chosen.Index, score, chosen.Title)
	return chosen, true
}

// selectByScore returns the first candidate with the maximum reputation
// score. Later candidates with an equal score never displace an earlier one.
func (s *Selector) selectByScore(candidates []scholar.Candidate) (scholar.Candidate, int) {
	best := candidates[0]
	bestScore := s.Table.Score(best.CombinedText())
	for _, c := range candidates[1:] {
		if score := s.Table.Score(c.CombinedText()); score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

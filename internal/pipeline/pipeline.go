// Package pipeline orchestrates the per-entry resolve-and-reformat sequence.
package pipeline

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/fixbib/fixbib/internal/bibtex"
	"github.com/fixbib/fixbib/internal/normalize"
	"github.com/fixbib/fixbib/internal/scholar"
	"github.com/fixbib/fixbib/internal/selector"
)

// DefaultPace is the fixed delay between entries, matching the courtesy
// pause the search provider expects.
const DefaultPace = 3 * time.Second

// Orchestrator drives the full per-entry sequence: query → search → expand
// versions → select → fetch citation → reformat → parse.
//
// Entries are processed strictly one at a time. Any stage failure keeps the
// original entry; the output always has the same length and order as the
// input.
type Orchestrator struct {
	search     scholar.Provider
	selector   *selector.Selector
	normalizer *normalize.Normalizer
	pacer      *rate.Limiter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPace sets the fixed delay between entries.
func WithPace(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.pacer = newPacer(d)
	}
}

// newPacer builds a limiter that starts empty, so even the very first
// inter-entry gap waits the full delay.
func newPacer(d time.Duration) *rate.Limiter {
	l := rate.NewLimiter(rate.Every(d), 1)
	l.Allow()
	return l
}

// New creates an Orchestrator. All three collaborators are required.
func New(search scholar.Provider, sel *selector.Selector, norm *normalize.Normalizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		search:     search,
		selector:   sel,
		normalizer: norm,
		pacer:      newPacer(DefaultPace),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessCollection resolves every entry and returns the output collection
// plus per-entry outcomes. The output has exactly the input's length and
// order; each element is either the normalized replacement (with the
// original ID) or the original entry.
func (o *Orchestrator) ProcessCollection(ctx context.Context, entries []bibtex.Entry, style string) ([]bibtex.Entry, []Outcome) {
	out := make([]bibtex.Entry, 0, len(entries))
	outcomes := make([]Outcome, 0, len(entries))

	for i, entry := range entries {
		if i > 0 {
			if err := o.pacer.Wait(ctx); err != nil {
				// Canceled mid-run: keep the rest unchanged.
				for _, rest := range entries[i:] {
					out = append(out, rest)
					outcomes = append(outcomes, Outcome{EntryID: rest.ID, Status: StatusSkipped, Detail: err.Error()})
				}
				return out, outcomes
			}
		}

		log.Printf("pipeline entry_start id=%s index=%d total=%d", entry.ID, i+1, len(entries))
		result, outcome := o.processEntry(ctx, entry, style)
		log.Printf("pipeline entry_done id=%s status=%s", entry.ID, outcome.Status)

		out = append(out, result)
		outcomes = append(outcomes, outcome)
	}

	return out, outcomes
}

// processEntry runs the stage sequence for one entry. On any failure it
// returns the original entry unchanged together with the failure status;
// partial results are never produced.
func (o *Orchestrator) processEntry(ctx context.Context, entry bibtex.Entry, style string) (bibtex.Entry, Outcome) {
	outcome := Outcome{EntryID: entry.ID}

	query, ok := BuildQuery(entry)
	if !ok {
		outcome.Status = StatusNoQuery
		return entry, outcome
	}
	outcome.Query = query

	candidates, err := o.search.Search(ctx, query)
	if err != nil {
		outcome.Status = StatusNoCandidates
		outcome.Detail = err.Error()
		return entry, outcome
	}

	// Only the top result's versions affordance triggers expansion.
	if len(candidates) > 0 && candidates[0].HasMoreVersions() {
		expanded, err := o.search.ExpandVersions(ctx, candidates[0])
		if err != nil {
			outcome.Status = StatusNoCandidates
			outcome.Detail = err.Error()
			return entry, outcome
		}
		candidates = expanded
	}

	chosen, ok := o.selector.Select(ctx, candidates)
	if !ok {
		outcome.Status = StatusNoCandidates
		return entry, outcome
	}
	outcome.ChosenTitle = chosen.Title
	if o.selector.Table != nil {
		outcome.ChosenScore = o.selector.Table.Score(chosen.CombinedText())
	}

	raw, err := o.search.FetchCitation(ctx, chosen)
	if err != nil {
		outcome.Status = StatusFetchFailed
		outcome.Detail = err.Error()
		return entry, outcome
	}

	normalized, err := o.normalizer.Reformat(ctx, raw, style)
	if err != nil {
		outcome.Status = StatusReformatFailed
		outcome.Detail = err.Error()
		return entry, outcome
	}

	parsed, err := bibtex.Parse(normalized)
	if err != nil || len(parsed) == 0 {
		outcome.Status = StatusParseFailed
		if err != nil {
			outcome.Detail = err.Error()
		}
		return entry, outcome
	}

	// Referential stability: the replacement keeps the original citation key.
	replacement := parsed[0]
	replacement.ID = entry.ID

	outcome.Status = StatusReplaced
	return replacement, outcome
}

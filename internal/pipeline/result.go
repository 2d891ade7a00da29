package pipeline

// Status names the outcome of processing one entry. Every failure status
// means the original entry was kept unchanged.
type Status string

const (
	// StatusReplaced means the entry was replaced with a normalized citation.
	StatusReplaced Status = "replaced"

	// StatusNoQuery means no usable field existed to search with.
	StatusNoQuery Status = "no_query"

	// StatusNoCandidates means search returned nothing usable.
	StatusNoCandidates Status = "no_candidates"

	// StatusFetchFailed means the chosen candidate's citation could not be
	// retrieved.
	StatusFetchFailed Status = "citation_fetch_failed"

	// StatusReformatFailed means the LLM reformat call failed or returned
	// unusable text.
	StatusReformatFailed Status = "reformat_failed"

	// StatusParseFailed means the normalized text did not parse back into a
	// structured entry.
	StatusParseFailed Status = "parse_failed"

	// StatusSkipped means the run was canceled before this entry started;
	// the original entry is passed through.
	StatusSkipped Status = "skipped"
)

// Replaced reports whether the entry was successfully rewritten.
func (s Status) Replaced() bool { return s == StatusReplaced }

// Outcome records what happened to one entry, for logging and run summaries.
// Correctness never depends on it: the entry slice returned alongside is the
// authoritative result.
type Outcome struct {
	EntryID string `json:"entry_id"`
	Status  Status `json:"status"`
	Query   string `json:"query,omitempty"`

	// ChosenTitle and ChosenScore describe the selected candidate, when
	// selection happened.
	ChosenTitle string `json:"chosen_title,omitempty"`
	ChosenScore int    `json:"chosen_score,omitempty"`

	// Detail carries the failure error text, when any.
	Detail string `json:"detail,omitempty"`
}

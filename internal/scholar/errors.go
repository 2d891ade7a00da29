package scholar

import "errors"

// Common errors returned by the Scholar provider.
var (
	// ErrNoResults indicates a search returned no candidates.
	ErrNoResults = errors.New("no scholar results")

	// ErrNoCitation indicates a candidate exposes no citation to fetch.
	ErrNoCitation = errors.New("no citation available for result")

	// ErrNoVersions indicates a candidate has no versions page.
	ErrNoVersions = errors.New("result has no additional versions")

	// ErrBlocked indicates Scholar served a captcha or robot check instead
	// of results.
	ErrBlocked = errors.New("scholar blocked the request")
)

package llm

import "errors"

// Common errors returned by LLM providers.
var (
	// ErrNoCredentials indicates the provider's API key is not configured.
	ErrNoCredentials = errors.New("llm credentials not configured")

	// ErrEmptyResponse indicates the provider returned no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// Package llm provides text-generation providers for citation work.
package llm

import "context"

// Provider generates a free-form completion for a prompt.
type Provider interface {
	// Complete sends the prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the underlying model.
	ModelName() string
}

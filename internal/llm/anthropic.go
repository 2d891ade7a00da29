package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"

	// anthropicKeyEnv is the environment variable holding the API key.
	anthropicKeyEnv = "ANTHROPIC_API_KEY"

	// maxCompletionTokens bounds response length; citations are short.
	maxCompletionTokens = 2048
)

// Anthropic is a Provider backed by the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic provider. The API key is read from
// ANTHROPIC_API_KEY.
func NewAnthropic(model string) (*Anthropic, error) {
	apiKey := strings.TrimSpace(os.Getenv(anthropicKeyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoCredentials, anthropicKeyEnv)
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// ModelName returns the configured model identifier.
func (p *Anthropic) ModelName() string { return p.model }

// Complete sends a single-turn message and concatenates text blocks.
func (p *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxCompletionTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

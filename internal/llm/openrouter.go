package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// OpenRouterBaseURL is the OpenRouter OpenAI-compatible endpoint.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// DefaultOpenRouterModel is used when no model is configured.
	DefaultOpenRouterModel = "anthropic/claude-3.5-sonnet"

	// openRouterKeyEnv is the environment variable holding the API key.
	openRouterKeyEnv = "OPENROUTER_API_KEY"
)

// OpenRouter is a Provider backed by the OpenRouter chat completions API.
type OpenRouter struct {
	client openai.Client
	model  string
}

// OpenRouterOption configures an OpenRouter provider.
type OpenRouterOption func(*openRouterConfig)

type openRouterConfig struct {
	model   string
	baseURL string
}

// WithOpenRouterModel sets the model identifier.
func WithOpenRouterModel(model string) OpenRouterOption {
	return func(c *openRouterConfig) {
		c.model = model
	}
}

// WithOpenRouterBaseURL sets a custom endpoint (for testing).
func WithOpenRouterBaseURL(url string) OpenRouterOption {
	return func(c *openRouterConfig) {
		c.baseURL = url
	}
}

// NewOpenRouter creates an OpenRouter provider. The API key is read from
// OPENROUTER_API_KEY; a missing key is a startup error, not a per-call one.
func NewOpenRouter(opts ...OpenRouterOption) (*OpenRouter, error) {
	apiKey := strings.TrimSpace(os.Getenv(openRouterKeyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoCredentials, openRouterKeyEnv)
	}

	cfg := openRouterConfig{model: DefaultOpenRouterModel, baseURL: OpenRouterBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
	)
	return &OpenRouter{client: client, model: cfg.model}, nil
}

// ModelName returns the configured model identifier.
func (p *OpenRouter) ModelName() string { return p.model }

// Complete sends a single-turn chat completion request.
func (p *OpenRouter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Package normalize rewrites raw citations into a target style via an LLM.
package normalize

import (
	"context"
	"fmt"
	"strings"

	"github.com/fixbib/fixbib/internal/llm"
)

// Normalizer reformats citation text with a text-generation provider.
type Normalizer struct {
	provider llm.Provider
}

// New creates a Normalizer.
func New(provider llm.Provider) *Normalizer {
	return &Normalizer{provider: provider}
}

// Reformat sends raw through the reformatting prompt and returns the
// cleaned-up citation text. The caller is responsible for parsing the result
// back into a structured entry.
func (n *Normalizer) Reformat(ctx context.Context, raw, style string) (string, error) {
	resp, err := n.provider.Complete(ctx, buildReformatPrompt(raw, style))
	if err != nil {
		return "", fmt.Errorf("reformat completion: %w", err)
	}

	text := ExtractFenced(resp)
	if text == "" {
		return "", fmt.Errorf("reformat returned no usable text")
	}
	return text, nil
}

// buildReformatPrompt embeds the raw citation and target style.
func buildReformatPrompt(raw, style string) string {
	return fmt.Sprintf(`Please reformat the following BibTeX entry according to %s style.
Ensure the entry is properly formatted, has consistent capitalization, and includes all necessary fields.
Remove any duplicate or redundant information.
Return only the reformatted BibTeX entry, without any additional explanation.

BibTeX entry:
%s

Reformatted BibTeX entry:`, style, raw)
}

// ExtractFenced returns the text strictly between the first pair of ```
// fence delimiters, or the whole input when no fence is present. The result
// is trimmed of surrounding whitespace.
func ExtractFenced(s string) string {
	if !strings.Contains(s, "```") {
		return strings.TrimSpace(s)
	}

	var inner []string
	inBlock := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inBlock {
				break
			}
			inBlock = true
			continue
		}
		if inBlock {
			inner = append(inner, line)
		}
	}
	return strings.TrimSpace(strings.Join(inner, "\n"))
}

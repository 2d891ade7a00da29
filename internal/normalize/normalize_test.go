package normalize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeLLM struct {
	resp       string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.resp, f.err
}

func (f *fakeLLM) ModelName() string { return "fake" }

func TestExtractFenced(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fence returns trimmed input",
			in:   "  @article{x, title = {T}}  \n",
			want: "@article{x, title = {T}}",
		},
		{
			name: "single fenced block",
			in:   "Here you go:\n```bibtex\n@article{x,\n  title = {T},\n}\n```\nHope that helps!",
			want: "@article{x,\n  title = {T},\n}",
		},
		{
			name: "bare fence without language",
			in:   "```\n@misc{y}\n```",
			want: "@misc{y}",
		},
		{
			name: "only first block is used",
			in:   "```\nfirst\n```\n```\nsecond\n```",
			want: "first",
		},
		{
			name: "idempotent on already-extracted text",
			in:   "@article{x,\n  title = {T},\n}",
			want: "@article{x,\n  title = {T},\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFenced(tt.in); got != tt.want {
				t.Errorf("ExtractFenced() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFenced_RoundTrip(t *testing.T) {
	fenced := "```bibtex\n@article{a, year = {2020}}\n```"
	once := ExtractFenced(fenced)
	twice := ExtractFenced(once)
	if once != twice {
		t.Errorf("extraction not idempotent: %q then %q", once, twice)
	}
}

func TestReformat(t *testing.T) {
	fake := &fakeLLM{resp: "```bibtex\n@article{k, title = {Clean}}\n```"}
	n := New(fake)

	got, err := n.Reformat(context.Background(), "@article{k,title={messy}}", "IEEE")
	if err != nil {
		t.Fatalf("Reformat() error: %v", err)
	}
	if got != "@article{k, title = {Clean}}" {
		t.Errorf("Reformat() = %q", got)
	}

	if !strings.Contains(fake.lastPrompt, "IEEE style") {
		t.Errorf("prompt should name the style, got:\n%s", fake.lastPrompt)
	}
	if !strings.Contains(fake.lastPrompt, "@article{k,title={messy}}") {
		t.Errorf("prompt should embed the raw citation, got:\n%s", fake.lastPrompt)
	}
}

func TestReformat_ProviderError(t *testing.T) {
	n := New(&fakeLLM{err: errors.New("timeout")})
	if _, err := n.Reformat(context.Background(), "@x{}", "standard"); err == nil {
		t.Error("Reformat() should propagate provider errors")
	}
}

func TestReformat_EmptyFence(t *testing.T) {
	n := New(&fakeLLM{resp: "```\n\n```"})
	if _, err := n.Reformat(context.Background(), "@x{}", "standard"); err == nil {
		t.Error("Reformat() should fail when extraction yields nothing")
	}
}

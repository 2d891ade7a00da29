package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "fixbib.yml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", cfg.Style, DefaultStyle)
	}
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderOpenRouter)
	}
	if cfg.PaceSeconds != DefaultPaceSeconds {
		t.Errorf("PaceSeconds = %d, want %d", cfg.PaceSeconds, DefaultPaceSeconds)
	}
	if cfg.MaxCandidates != DefaultMaxCandidates {
		t.Errorf("MaxCandidates = %d, want %d", cfg.MaxCandidates, DefaultMaxCandidates)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixbib.yml")
	content := `style: ieee
provider: anthropic
model: claude-3-5-haiku-latest
pace_seconds: 5
cache_path: /tmp/fixbib-cache.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Style != "ieee" || cfg.Provider != ProviderAnthropic || cfg.PaceSeconds != 5 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.MaxCandidates != DefaultMaxCandidates {
		t.Errorf("unset MaxCandidates should default, got %d", cfg.MaxCandidates)
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixbib.yml")
	if err := os.WriteFile(path, []byte("provider: cohere\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject an unknown provider")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixbib.yml")
	if err := os.WriteFile(path, []byte("style: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject malformed YAML")
	}
}

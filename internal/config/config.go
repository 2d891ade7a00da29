// Package config handles fixbib run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in configuration.
const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
)

// Defaults applied when a field is absent from the file and flags.
const (
	DefaultStyle         = "standard"
	DefaultProvider      = ProviderOpenRouter
	DefaultPaceSeconds   = 3
	DefaultMaxCandidates = 10
	DefaultFile          = "fixbib.yml"
)

// Config represents a fixbib run configuration, loaded from an optional
// fixbib.yml. Flags override file values; credentials never live here.
type Config struct {
	// Style is the target citation style name.
	Style string `yaml:"style,omitempty"`

	// Provider selects the text-generation backend: openrouter or anthropic.
	Provider string `yaml:"provider,omitempty"`

	// Model overrides the provider's default model.
	Model string `yaml:"model,omitempty"`

	// ReputationFile points to a YAML keyword→score table. Empty uses the
	// built-in table.
	ReputationFile string `yaml:"reputation_file,omitempty"`

	// PaceSeconds is the fixed delay between entries.
	PaceSeconds int `yaml:"pace_seconds,omitempty"`

	// MaxCandidates bounds the LLM ranking window.
	MaxCandidates int `yaml:"max_candidates,omitempty"`

	// CachePath enables the citation cache when non-empty.
	CachePath string `yaml:"cache_path,omitempty"`
}

// Load reads configuration from path. A missing file yields defaults; an
// unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.PaceSeconds <= 0 {
		c.PaceSeconds = DefaultPaceSeconds
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case "", ProviderOpenRouter, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderOpenRouter, ProviderAnthropic)
	}
	if c.PaceSeconds < 0 {
		return fmt.Errorf("pace_seconds must not be negative")
	}
	if c.MaxCandidates < 0 {
		return fmt.Errorf("max_candidates must not be negative")
	}
	return nil
}

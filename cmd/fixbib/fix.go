package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixbib/fixbib/internal/bibtex"
	"github.com/fixbib/fixbib/internal/config"
	"github.com/fixbib/fixbib/internal/llm"
	"github.com/fixbib/fixbib/internal/normalize"
	"github.com/fixbib/fixbib/internal/pipeline"
	"github.com/fixbib/fixbib/internal/reputation"
	"github.com/fixbib/fixbib/internal/scholar"
	"github.com/fixbib/fixbib/internal/selector"
)

var (
	fixOutput     string
	fixStyle      string
	fixProvider   string
	fixModel      string
	fixConfig     string
	fixCache      string
	fixNoHeadless bool
	fixNoLLMPick  bool
)

func init() {
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Output .bib file (default: <input>_fixed.bib)")
	fixCmd.Flags().StringVarP(&fixStyle, "style", "s", "", "Citation style (default: standard)")
	fixCmd.Flags().StringVar(&fixProvider, "provider", "", "LLM provider: openrouter or anthropic")
	fixCmd.Flags().StringVar(&fixModel, "model", "", "LLM model identifier")
	fixCmd.Flags().StringVar(&fixConfig, "config", config.DefaultFile, "Config file path")
	fixCmd.Flags().StringVar(&fixCache, "cache", "", "Citation cache database path (disabled when empty)")
	fixCmd.Flags().BoolVar(&fixNoHeadless, "no-headless", false, "Run the browser with a visible window")
	fixCmd.Flags().BoolVar(&fixNoLLMPick, "no-llm-select", false, "Use only reputation scoring for version selection")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix <input.bib>",
	Short: "Resolve and reformat every entry of a .bib file",
	Long: `Resolve and reformat every entry of a .bib file.

Each entry is searched on Google Scholar, the most reputable version is
selected, its BibTeX is fetched and rewritten into the target style. Entries
that cannot be resolved keep their original form, so the output always
contains every input entry in order.

Credentials are read from the environment (or a .env file):
  OPENROUTER_API_KEY  for the openrouter provider
  ANTHROPIC_API_KEY   for the anthropic provider

Examples:
  fixbib fix refs.bib
  fixbib fix refs.bib -o clean.bib -s ieee
  fixbib fix refs.bib --provider anthropic --cache ~/.fixbib-cache.db`,
	Args: cobra.ExactArgs(1),
	Run:  runFix,
}

// FixSummary is the JSON result of a fix run.
type FixSummary struct {
	Input    string             `json:"input"`
	Output   string             `json:"output"`
	Style    string             `json:"style"`
	Entries  int                `json:"entries"`
	Replaced int                `json:"replaced"`
	Outcomes []pipeline.Outcome `json:"outcomes"`
}

func runFix(cmd *cobra.Command, args []string) {
	input := args[0]

	cfg, err := config.Load(fixConfig)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	applyFixFlags(cfg)

	output := fixOutput
	if output == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		output = stem + "_fixed.bib"
	}

	entries, err := bibtex.ParseFile(input)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "%s contains no entries", input)
	}

	// Missing credentials abort before any entry is touched.
	provider, err := buildProvider(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	table := reputation.DefaultTable()
	if cfg.ReputationFile != "" {
		table, err = reputation.Load(cfg.ReputationFile)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	scraper, err := buildScraper(cfg)
	if err != nil {
		exitWithError(ExitError, "starting browser: %v", err)
	}
	defer scraper.Close()

	rankLLM := llm.Provider(provider)
	if fixNoLLMPick {
		rankLLM = nil
	}
	sel := selector.New(table, rankLLM)
	sel.MaxCandidates = cfg.MaxCandidates

	orch := pipeline.New(scraper, sel, normalize.New(provider),
		pipeline.WithPace(time.Duration(cfg.PaceSeconds)*time.Second))

	fixed, outcomes := orch.ProcessCollection(context.Background(), entries, cfg.Style)

	if err := bibtex.WriteFile(output, fixed); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	replaced := 0
	for _, oc := range outcomes {
		if oc.Status.Replaced() {
			replaced++
		}
	}

	summary := FixSummary{
		Input:    input,
		Output:   output,
		Style:    cfg.Style,
		Entries:  len(entries),
		Replaced: replaced,
		Outcomes: outcomes,
	}

	if humanOutput {
		printFixSummary(summary)
	} else {
		outputJSON(summary)
	}
}

// applyFixFlags lets command-line flags override file configuration.
func applyFixFlags(cfg *config.Config) {
	if fixStyle != "" {
		cfg.Style = fixStyle
	}
	if fixProvider != "" {
		cfg.Provider = fixProvider
	}
	if fixModel != "" {
		cfg.Model = fixModel
	}
	if fixCache != "" {
		cfg.CachePath = fixCache
	}
}

// buildProvider constructs the configured LLM provider wrapped with bounded
// retries.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	var inner llm.Provider
	var err error

	switch cfg.Provider {
	case config.ProviderAnthropic:
		inner, err = llm.NewAnthropic(cfg.Model)
	case config.ProviderOpenRouter:
		var opts []llm.OpenRouterOption
		if cfg.Model != "" {
			opts = append(opts, llm.WithOpenRouterModel(cfg.Model))
		}
		inner, err = llm.NewOpenRouter(opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return llm.NewRetrying(inner, llm.DefaultRetryAttempts), nil
}

// buildScraper constructs the Scholar scraper with optional cache.
func buildScraper(cfg *config.Config) (*scholar.Scraper, error) {
	var opts []scholar.ScraperOption
	if fixNoHeadless {
		opts = append(opts, scholar.WithVisible())
	}
	if cfg.CachePath != "" {
		cache, err := scholar.OpenCache(cfg.CachePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scholar.WithCache(cache))
	}
	return scholar.NewScraper(opts...)
}

func printFixSummary(s FixSummary) {
	fmt.Printf("Processed %d entries (%d replaced) -> %s\n\n", s.Entries, s.Replaced, s.Output)
	for _, oc := range s.Outcomes {
		marker := "·"
		if oc.Status.Replaced() {
			marker = "✓"
		}
		fmt.Printf("%s %s  %s", marker, oc.EntryID, oc.Status)
		if oc.ChosenTitle != "" {
			fmt.Printf("  (%s, score %d)", truncateString(oc.ChosenTitle, 50), oc.ChosenScore)
		}
		fmt.Println()
	}
}

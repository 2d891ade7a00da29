// Package main provides the fixbib CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fixbib",
	Short: "Fix and reformat BibTeX entries using Google Scholar and LLMs",
	Long: `fixbib resolves each entry of a .bib file to its most reputable
published version and normalizes the citation formatting.

For every entry it builds a search query, retrieves candidate versions from
Google Scholar, picks the most reputable one, fetches that version's BibTeX,
and rewrites it into the requested citation style with an LLM. Entries that
cannot be resolved are passed through unchanged.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Credentials come from the environment; .env files are a convenience.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fixbib/fixbib/internal/bibtex"
	"github.com/fixbib/fixbib/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <input.bib>",
	Short: "Show the search query each entry would produce",
	Long: `Show the search query each entry would produce, without searching.

Useful for checking why an entry falls through to the unchanged-original
path: entries with no title, author, or year cannot be searched.`,
	Args: cobra.ExactArgs(1),
	Run:  runQuery,
}

// QueryResult is one entry's derived search query.
type QueryResult struct {
	EntryID    string `json:"entry_id"`
	Query      string `json:"query,omitempty"`
	Searchable bool   `json:"searchable"`
}

func runQuery(cmd *cobra.Command, args []string) {
	entries, err := bibtex.ParseFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	results := make([]QueryResult, 0, len(entries))
	for _, e := range entries {
		q, ok := pipeline.BuildQuery(e)
		results = append(results, QueryResult{EntryID: e.ID, Query: q, Searchable: ok})
	}

	if humanOutput {
		for _, r := range results {
			if r.Searchable {
				fmt.Printf("%s: %s\n", r.EntryID, r.Query)
			} else {
				fmt.Printf("%s: (not searchable)\n", r.EntryID)
			}
		}
	} else {
		outputJSON(results)
	}
}

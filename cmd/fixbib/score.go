package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fixbib/fixbib/internal/reputation"
)

var scoreTable string

func init() {
	scoreCmd.Flags().StringVar(&scoreTable, "table", "", "YAML reputation table (default: built-in)")
	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score <text>...",
	Short: "Score venue text against the reputation table",
	Long: `Score venue text against the reputation table.

The arguments are joined and scored the same way search results are during
version selection.

Examples:
  fixbib score "IEEE Transactions on Pattern Analysis"
  fixbib score --table venues.yml "MyConf 2024"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runScore,
}

// ScoreResult is the scoring output.
type ScoreResult struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

func runScore(cmd *cobra.Command, args []string) {
	table := reputation.DefaultTable()
	if scoreTable != "" {
		var err error
		table, err = reputation.Load(scoreTable)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	text := strings.Join(args, " ")
	result := ScoreResult{Text: text, Score: table.Score(text)}

	if humanOutput {
		fmt.Printf("%d\n", result.Score)
	} else {
		outputJSON(result)
	}
}

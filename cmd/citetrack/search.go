package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citetrack/internal/logging"
	"github.com/matsen/citetrack/internal/query"
)

var topN int

var errNegativeN = errors.New("--n cannot be negative")

func init() {
	topCmd.Flags().IntVar(&topN, "n", 0, "Number of papers to list (default: config top_n)")
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(citersCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(topCmd)
}

var authorCmd = &cobra.Command{
	Use:   "author <name>",
	Short: "List papers written by an author",
	Long: `List the papers with an authored_by edge to the given author.

The name must match exactly (case-sensitive, after trimming at ingestion).

Examples:
  citetrack author "Ada Lovelace" -i papers.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := mustLoadEngine(cmd)
		return outputList(engine.FindByAuthor(args[0]), "No papers found.")
	},
}

var citersCmd = &cobra.Command{
	Use:   "citers <title>",
	Short: "List papers citing a paper",
	Long: `List the papers with a cites edge to the given title, in the order the
citations were first recorded.

Examples:
  citetrack citers "On Computable Numbers" -i papers.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := mustLoadEngine(cmd)
		return outputList(engine.FindCiters(args[0]), "No citing papers found.")
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain <title>",
	Short: "List every paper reachable by following citations",
	Long: `Follow cites edges outward from a paper, breadth first, and list every
paper reached, starting with the paper itself. An unknown title lists nothing.

Examples:
  citetrack chain "Deep Residual Learning" -i papers.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := mustLoadEngine(cmd)
		return outputList(engine.CitationChain(args[0]), "No cited papers found.")
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank papers by number of citations received",
	Long: `Rank papers by the number of cites edges pointing at them. Papers with
equal counts keep the order in which they entered the graph.

Examples:
  citetrack top -i papers.csv
  citetrack top --n 10 -i papers.csv --human`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	n, err := resolveTopN(topN, cfg.TopN)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	engine := mustLoadEngine(cmd)
	ranked := engine.MostCitedPapers(n)
	if !humanOutput {
		return outputJSON(ranked)
	}
	if len(ranked) == 0 {
		outputHuman("No papers found.\n")
		return nil
	}
	printTitle("Most cited papers")
	for i, pc := range ranked {
		outputHuman("%2d. %s %s\n", i+1, pc.Paper, styleNumber.Render(fmt.Sprintf("(%d)", pc.Citations)))
	}
	return nil
}

// resolveTopN returns flag when set, else fallback. Negative values are
// rejected.
func resolveTopN(flag, fallback int) (int, error) {
	switch {
	case flag < 0:
		return 0, errNegativeN
	case flag == 0:
		if fallback < 1 {
			return query.DefaultTopN, nil
		}
		return fallback, nil
	default:
		return flag, nil
	}
}

// mustLoadEngine loads the --input files and returns a query engine over them.
func mustLoadEngine(cmd *cobra.Command) *query.Engine {
	store, _ := mustLoadGraph(logging.FromContext(cmd.Context()), inputFiles)
	return query.New(store)
}

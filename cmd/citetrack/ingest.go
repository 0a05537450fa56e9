package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citetrack/internal/logging"
	"github.com/matsen/citetrack/internal/query"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Load record files and report what was ingested",
	Long: `Load record files into a fresh graph and print a summary.

Files given with --input are loaded first, then the positional arguments.
The format is chosen by extension: .csv, .json (array of objects), or
.jsonl/.ndjson (one object per line). Records without a title are skipped.

Examples:
  citetrack ingest papers.csv
  citetrack ingest papers.csv extra.jsonl --human`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	paths := append(append([]string{}, inputFiles...), args...)
	if len(paths) == 0 {
		exitWithError(ExitError, "no input files (pass files as arguments or with --input)")
	}

	progress := logging.NewProgress(logger)
	store, sum := mustLoadGraph(logger, paths)
	progress.Done("Ingested records", "ingested", sum.ingested, "skipped", sum.skipped)

	if !humanOutput {
		return outputJSON(sum.response())
	}

	stats := query.New(store).Stats()
	printTitle("Ingested " + strings.Join(sum.files, ", "))
	printCount(0, "ingested", sum.ingested)
	printCount(0, "skipped", sum.skipped)
	printCount(0, "nodes", stats.Nodes)
	printCount(0, "edges", stats.Edges)
	for _, e := range sum.errors {
		printDetail("%s", e)
	}
	return nil
}

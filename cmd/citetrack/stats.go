package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show node and edge counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := mustLoadEngine(cmd).Stats()
		if !humanOutput {
			return outputJSON(stats)
		}
		printTitle("Citation graph")
		printCount(0, "nodes", stats.Nodes)
		printCount(1, "papers", stats.Papers)
		printCount(1, "authors", stats.Authors)
		printCount(1, "journals", stats.Journals)
		printCount(0, "edges", stats.Edges)
		printCount(1, "cites", stats.Citations)
		return nil
	},
}

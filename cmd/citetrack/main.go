// Package main provides the citetrack CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matsen/citetrack/internal/config"
	"github.com/matsen/citetrack/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool
	verbose     bool
	configPath  string
	inputFiles  []string
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citetrack",
	Short: "In-memory citation network tracker",
	Long: `citetrack builds a citation network of papers, authors and journals from
bibliographic records and answers questions about it.

The graph lives in memory only. Every command rebuilds it from the record
files given with --input (CSV, JSON array, or JSONL), in order:

  citetrack author "Ada Lovelace" -i papers.csv -i extra.json
  citetrack top --n 10 -i papers.csv
  citetrack serve -i papers.csv

All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/citetrack/config.yml)")
	rootCmd.PersistentFlags().StringArrayVarP(&inputFiles, "input", "i", nil, "Record file to ingest before running (repeatable)")
	rootCmd.Version = Version
}

// setup loads configuration and attaches a logger to the command context.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg = loaded

	level, _ := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = log.DebugLevel
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(os.Stderr, level)))
	return nil
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matsen/citetrack/internal/logging"
	"github.com/matsen/citetrack/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config addr)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the citation graph over HTTP",
	Long: `Start the HTTP API.

The graph is seeded from the config's seed_files and then from any --input
files, and grows with every /submit-paper and /upload-batch request. It is
discarded when the server stops.

Examples:
  citetrack serve
  citetrack serve --addr :9000 -i papers.csv`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	progress := logging.NewProgress(logger)
	paths := append(append([]string{}, cfg.SeedFiles...), inputFiles...)
	store, sum := mustLoadGraph(logger, paths)
	if len(paths) > 0 {
		progress.Done("Seeded graph", "files", len(sum.files), "ingested", sum.ingested, "skipped", sum.skipped)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, store, logger).Run(ctx)
}

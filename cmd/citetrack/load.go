package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matsen/citetrack/internal/graph"
	"github.com/matsen/citetrack/internal/importer"
	"github.com/matsen/citetrack/internal/ingest"
)

// loadSummary accumulates ingestion counts across files.
type loadSummary struct {
	files    []string
	ingested int
	skipped  int
	errors   []string
}

func (s *loadSummary) response() IngestResponse {
	files := s.files
	if files == nil {
		files = []string{}
	}
	errs := s.errors
	if errs == nil {
		errs = []string{}
	}
	return IngestResponse{Files: files, Ingested: s.ingested, Skipped: s.skipped, Errors: errs}
}

// loadFiles parses each path in order and ingests its records. Row-level
// problems are counted as skipped; an unreadable file aborts the load.
func loadFiles(in *ingest.Ingestor, logger *log.Logger, paths []string) (*loadSummary, error) {
	sum := &loadSummary{}
	for _, path := range paths {
		parsed, err := importer.ParseFile(path)
		if err != nil {
			return sum, err
		}

		res := in.IngestAll(parsed.Records)
		for _, msg := range parsed.ErrorStrings() {
			sum.errors = append(sum.errors, fmt.Sprintf("%s: %s", path, msg))
		}
		sum.files = append(sum.files, path)
		sum.ingested += res.Ingested
		sum.skipped += res.Skipped + len(parsed.Errors)

		logger.Debug("loaded input", "file", path, "ingested", res.Ingested, "skipped", res.Skipped+len(parsed.Errors))
	}
	return sum, nil
}

// mustLoadGraph builds a store from paths, exiting with ExitDataError if
// any file cannot be read.
func mustLoadGraph(logger *log.Logger, paths []string) (*graph.Store, *loadSummary) {
	store := graph.NewStore()
	in := ingest.New(store, logger)

	sum, err := loadFiles(in, logger, paths)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return store, sum
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is the JSON shape of a failed command.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IngestResponse summarizes the records loaded into the graph.
type IngestResponse struct {
	Files    []string `json:"files"`
	Ingested int      `json:"ingested"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// OutputResponse reports where an export was written.
type OutputResponse struct {
	Output string `json:"output"`
	Format string `json:"format"`
}

// outputList prints a list of ids, one per line in human mode.
func outputList(items []string, empty string) error {
	if !humanOutput {
		return outputJSON(items)
	}
	if len(items) == 0 {
		outputHuman("%s\n", empty)
		return nil
	}
	for _, item := range items {
		outputHuman("%s\n", item)
	}
	return nil
}

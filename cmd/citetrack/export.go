package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/citetrack/internal/export"
	"github.com/matsen/citetrack/internal/logging"
)

// Export formats.
const (
	FormatJSON      = "json"
	FormatCytoscape = "cytoscape"
	FormatHTML      = "html"
	FormatDOT       = "dot"
	FormatSVG       = "svg"
)

var validExportFormats = []string{FormatJSON, FormatCytoscape, FormatHTML, FormatDOT, FormatSVG}

var (
	exportFormat string
	exportOutput string
	exportLayout string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", FormatJSON, "Output format: json, cytoscape, html, dot, or svg")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportLayout, "layout", "force", "HTML layout algorithm: force, circle, or grid")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full citation graph",
	Long: `Export every node and edge of the graph built from --input files.

Formats:
  json       {"nodes": [...], "edges": [...]} snapshot
  cytoscape  Cytoscape.js elements
  html       interactive page (papers blue, authors yellow squares,
             journals green diamonds)
  dot        Graphviz DOT source
  svg        DOT rendered in-process with Graphviz

Examples:
  citetrack export -i papers.csv > graph.json
  citetrack export -i papers.csv --format html --output graph.html
  citetrack export -i papers.csv --format html --layout circle -o graph.html
  citetrack export -i papers.csv --format svg -o graph.svg`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := parseExportFormat(exportFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if format == FormatHTML {
		if err := export.ValidateLayout(exportLayout); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	logger := logging.FromContext(cmd.Context())
	store, _ := mustLoadGraph(logger, inputFiles)
	data := export.ExportGraph(store)

	out, err := renderExport(cmd, data, format)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(exportOutput, out, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	logger.Info("Graph exported", "nodes", len(data.Nodes), "edges", len(data.Edges), "output", exportOutput)
	if humanOutput {
		outputHuman("Graph written to %s\n", exportOutput)
		return nil
	}
	return outputJSON(OutputResponse{Output: exportOutput, Format: format})
}

func renderExport(cmd *cobra.Command, data *export.GraphData, format string) ([]byte, error) {
	switch format {
	case FormatCytoscape:
		s, err := data.ToCytoscapeJSON()
		return []byte(s + "\n"), err
	case FormatHTML:
		opts := export.DefaultOptions()
		opts.Layout = exportLayout
		s, err := export.GenerateHTML(data, opts)
		return []byte(s), err
	case FormatDOT:
		return []byte(export.ToDOT(data)), nil
	case FormatSVG:
		return export.RenderSVG(cmd.Context(), export.ToDOT(data))
	default:
		b, err := json.MarshalIndent(data, "", "  ")
		return append(b, '\n'), err
	}
}

// parseExportFormat validates a --format value, case-insensitively.
func parseExportFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, valid := range validExportFormats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: %s)", s, strings.Join(validExportFormats, ", "))
}

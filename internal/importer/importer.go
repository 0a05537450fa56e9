// Package importer reads bibliographic records from CSV, JSON and JSONL
// files. Bad rows are reported and skipped; they never abort a batch.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/citetrack/internal/record"
)

// Format names an input file format.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned for file extensions or format names that
// no parser handles.
var ErrUnknownFormat = errors.New("unknown import format")

// Result holds the records parsed from one input plus the per-row errors
// for rows that were skipped.
type Result struct {
	Records []record.Record
	Errors  []error
}

// ErrorStrings returns the row errors as strings for JSON output.
func (r *Result) ErrorStrings() []string {
	out := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		out = append(out, err.Error())
	}
	return out
}

// DetectFormat picks a format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ParseFormat(ext)
}

// ParseFormat validates a format name such as "csv".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatJSON, FormatJSONL:
		return f, nil
	case "ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q (want csv, json, or jsonl)", ErrUnknownFormat, name)
	}
}

// Parse reads records in the given format. The returned error is set only
// when the input as a whole is unusable.
func Parse(format Format, r io.Reader) (*Result, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatJSON:
		return ParseJSON(r)
	case FormatJSONL:
		return ParseJSONL(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseFile reads a file, choosing the parser by extension.
func ParseFile(path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(format, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

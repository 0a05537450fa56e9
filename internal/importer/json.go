package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matsen/citetrack/internal/record"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ParseJSON reads a JSON array of record objects. Elements that are not
// objects are skipped and reported.
func ParseJSON(r io.Reader) (*Result, error) {
	var elements []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decoding JSON array: %w", err)
	}

	res := &Result{}
	for i, raw := range elements {
		rec, err := decodeObject(raw)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("element %d: %w", i+1, err))
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// ParseJSONL reads one record object per line. Blank lines are skipped;
// lines that fail to decode are reported with their line number.
func ParseJSONL(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	res := &Result{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := decodeObject(line)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}
		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading JSONL: %w", err)
	}
	return res, nil
}

// DecodeRecord decodes a single JSON object into a record.
func DecodeRecord(data []byte) (record.Record, error) {
	return decodeObject(data)
}

func decodeObject(data []byte) (record.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return record.Record{}, fmt.Errorf("expected a JSON object")
	}

	// Keys are case-sensitive.
	var fields map[string]record.Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return record.Record{}, fmt.Errorf("decoding record: %w", err)
	}
	return record.Record{
		Title:     fields["title"],
		Authors:   fields["authors"],
		Journal:   fields["journal"],
		Year:      fields["year"],
		Citations: fields["citations"],
	}, nil
}

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/citetrack/internal/record"
)

// csvColumns maps header names to record fields.
var csvColumns = map[string]func(*record.Record, record.Value){
	"title":     func(r *record.Record, v record.Value) { r.Title = v },
	"authors":   func(r *record.Record, v record.Value) { r.Authors = v },
	"journal":   func(r *record.Record, v record.Value) { r.Journal = v },
	"year":      func(r *record.Record, v record.Value) { r.Year = v },
	"citations": func(r *record.Record, v record.Value) { r.Citations = v },
}

// ParseCSV reads a CSV file with a header row. Recognized columns are
// title, authors, journal, year and citations (case-insensitive); others are
// ignored. Empty cells are treated as missing fields.
func ParseCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	setters := make([]func(*record.Record, record.Value), len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		setters[i] = csvColumns[name]
	}

	res := &Result{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", perr.Line, perr.Err))
				continue
			}
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		var rec record.Record
		for i, cell := range row {
			if i >= len(setters) || setters[i] == nil || cell == "" {
				continue
			}
			setters[i](&rec, record.String(cell))
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

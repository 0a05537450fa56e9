// Package record defines the bibliographic record handed to ingestion and
// the normalization that turns loosely typed input into clean tokens.
package record

import "strings"

// Record is one bibliographic entry as produced by an upload, a form post
// or a file import. Every field is optional and may hold any JSON shape.
type Record struct {
	Title     Value `json:"title"`
	Authors   Value `json:"authors"`
	Journal   Value `json:"journal"`
	Year      Value `json:"year"`
	Citations Value `json:"citations"`
}

// Normalized is a record after trimming and type coercion.
type Normalized struct {
	Title     string
	Year      string
	Authors   []string
	Journal   string
	Citations []string
}

// Normalize cleans r. It returns false when the record has no usable title,
// in which case the whole record should be skipped.
//
// Degradation rules:
//   - authors and journal are used only when they are strings that are
//     non-empty after trimming; anything else is dropped
//   - citations that are not a string are treated as empty
//   - a missing or null year becomes ""
func Normalize(r Record) (Normalized, bool) {
	if !r.Title.Truthy() {
		return Normalized{}, false
	}

	n := Normalized{
		Title: r.Title.Text(),
		Year:  r.Year.Text(),
	}

	if s, ok := r.Authors.Str(); ok && strings.TrimSpace(s) != "" {
		n.Authors = SplitList(s)
	}
	// The journal name is kept verbatim; only its emptiness is judged trimmed.
	if s, ok := r.Journal.Str(); ok && strings.TrimSpace(s) != "" {
		n.Journal = s
	}

	citations, _ := r.Citations.Str()
	n.Citations = SplitList(citations)

	return n, true
}

// SplitList splits a comma-separated list, trimming each token and dropping
// empty ones.
func SplitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

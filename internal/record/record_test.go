package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantStr  bool
		truthy   bool
	}{
		{name: "string", input: `"Alice"`, wantText: "Alice", wantStr: true, truthy: true},
		{name: "empty string", input: `""`, wantText: "", wantStr: true, truthy: false},
		{name: "integer", input: `2021`, wantText: "2021", truthy: true},
		{name: "zero", input: `0`, wantText: "0", truthy: false},
		{name: "float", input: `2021.5`, wantText: "2021.5", truthy: true},
		{name: "null", input: `null`, wantText: "", truthy: false},
		{name: "true", input: `true`, wantText: "true", truthy: true},
		{name: "false", input: `false`, wantText: "false", truthy: false},
		{name: "empty array", input: `[]`, wantText: "[]", truthy: false},
		{name: "array", input: `["a"]`, wantText: `["a"]`, truthy: true},
		{name: "empty object", input: `{}`, wantText: "{}", truthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if got := v.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if _, ok := v.Str(); ok != tt.wantStr {
				t.Errorf("Str() ok = %v, want %v", ok, tt.wantStr)
			}
			if got := v.Truthy(); got != tt.truthy {
				t.Errorf("Truthy() = %v, want %v", got, tt.truthy)
			}
		})
	}
}

func TestRecordDecodeMissingFields(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"title":"P"}`), &r); err != nil {
		t.Fatal(err)
	}
	if !r.Authors.IsAbsent() || !r.Year.IsAbsent() {
		t.Errorf("missing fields should be absent: %+v", r)
	}
	if r.Title.IsAbsent() {
		t.Error("title should be present")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	r := Record{Title: String("P"), Year: Number("2020"), Citations: Null()}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"P","authors":null,"journal":null,"year":2020,"citations":null}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Normalized
		wantOK bool
	}{
		{
			name:   "missing title skips record",
			input:  `{"authors":"A,B"}`,
			wantOK: false,
		},
		{
			name:   "empty title skips record",
			input:  `{"title":"","journal":"Nature"}`,
			wantOK: false,
		},
		{
			name:   "missing year becomes empty",
			input:  `{"title":"P"}`,
			want:   Normalized{Title: "P", Year: ""},
			wantOK: true,
		},
		{
			name:   "numeric year keeps literal",
			input:  `{"title":"P","year":2021}`,
			want:   Normalized{Title: "P", Year: "2021"},
			wantOK: true,
		},
		{
			name:   "author tokens trimmed and empty dropped",
			input:  `{"title":"P","authors":" Alice ,, Bob "}`,
			want:   Normalized{Title: "P", Authors: []string{"Alice", "Bob"}},
			wantOK: true,
		},
		{
			name:   "non-string authors dropped",
			input:  `{"title":"P","authors":["Alice"]}`,
			want:   Normalized{Title: "P"},
			wantOK: true,
		},
		{
			name:   "blank authors dropped",
			input:  `{"title":"P","authors":"   "}`,
			want:   Normalized{Title: "P"},
			wantOK: true,
		},
		{
			name:   "non-string citations become empty",
			input:  `{"title":"P","citations":42}`,
			want:   Normalized{Title: "P"},
			wantOK: true,
		},
		{
			name:   "citations split",
			input:  `{"title":"P","citations":"Q, R,"}`,
			want:   Normalized{Title: "P", Citations: []string{"Q", "R"}},
			wantOK: true,
		},
		{
			name:   "blank journal dropped",
			input:  `{"title":"P","journal":"  "}`,
			want:   Normalized{Title: "P"},
			wantOK: true,
		},
		{
			name:   "journal kept verbatim",
			input:  `{"title":"P","journal":"Cell "}`,
			want:   Normalized{Title: "P", Journal: "Cell "},
			wantOK: true,
		},
		{
			name:   "numeric title is stringified",
			input:  `{"title":42}`,
			want:   Normalized{Title: "42"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			got, ok := Normalize(r)
			if ok != tt.wantOK {
				t.Fatalf("Normalize ok = %v, want %v", ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{",,", nil},
		{"a", []string{"a"}},
		{" a , b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SplitList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

package query

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matsen/citetrack/internal/graph"
	"github.com/matsen/citetrack/internal/ingest"
	"github.com/matsen/citetrack/internal/logging"
	"github.com/matsen/citetrack/internal/record"
)

// setup ingests the given JSON records into a fresh store.
func setup(t *testing.T, records ...string) (*Engine, *ingest.Ingestor, *graph.Store) {
	t.Helper()
	s := graph.NewStore()
	in := ingest.New(s, logging.Discard())
	for _, raw := range records {
		var r record.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			t.Fatalf("decoding %s: %v", raw, err)
		}
		in.Ingest(r)
	}
	return New(s), in, s
}

func TestFindByAuthor(t *testing.T) {
	e, _, _ := setup(t,
		`{"title":"P","authors":"Alice"}`,
		`{"title":"R","authors":"Bob, Alice"}`,
	)

	tests := []struct {
		author string
		want   []string
	}{
		{"Alice", []string{"P", "R"}},
		{"Bob", []string{"R"}},
		{"Nobody", []string{}},
		{"P", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			if got := e.FindByAuthor(tt.author); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindByAuthor(%q) = %v, want %v", tt.author, got, tt.want)
			}
		})
	}
}

func TestFindByAuthorFiltersNonPapers(t *testing.T) {
	e, _, s := setup(t)
	s.Update(func(g *graph.Graph) {
		g.UpsertNode("Alice", graph.KindAuthor, graph.Attrs{})
		g.UpsertNode("Nature", graph.KindJournal, graph.Attrs{})
		g.UpsertEdge("Nature", "Alice", graph.AuthoredBy)
	})

	if got := e.FindByAuthor("Alice"); len(got) != 0 {
		t.Errorf("FindByAuthor(Alice) = %v, want empty", got)
	}
}

func TestFindCiters(t *testing.T) {
	e, _, _ := setup(t, `{"title":"P","citations":"Q"}`)

	if got := e.FindCiters("Q"); !reflect.DeepEqual(got, []string{"P"}) {
		t.Errorf("FindCiters(Q) = %v, want [P]", got)
	}
	if got := e.FindCiters("P"); !reflect.DeepEqual(got, []string{}) {
		t.Errorf("FindCiters(P) = %v, want []", got)
	}
	if got := e.FindCiters("missing"); !reflect.DeepEqual(got, []string{}) {
		t.Errorf("FindCiters(missing) = %v, want []", got)
	}
}

func TestFindCitersIgnoresOverwrittenRelation(t *testing.T) {
	// "Q" is listed as both a citation and an author of P; the later
	// authored_by label replaces the cites label on the P -> Q slot.
	e, _, _ := setup(t,
		`{"title":"P","citations":"Q"}`,
		`{"title":"P","authors":"Q"}`,
	)

	if got := e.FindCiters("Q"); len(got) != 0 {
		t.Errorf("FindCiters(Q) = %v, want empty after relation overwrite", got)
	}
}

func TestMostCitedPapers(t *testing.T) {
	// A is cited 3 times, X once, Y once; X entered the graph before Y.
	e, _, _ := setup(t,
		`{"title":"A"}`,
		`{"title":"X"}`,
		`{"title":"Y"}`,
		`{"title":"C1","citations":"A, X"}`,
		`{"title":"C2","citations":"A, Y"}`,
		`{"title":"C3","citations":"A"}`,
	)

	got := e.MostCitedPapers(2)
	want := []PaperCount{{Paper: "A", Citations: 3}, {Paper: "X", Citations: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MostCitedPapers(2) = %+v, want %+v", got, want)
	}

	all := e.MostCitedPapers(100)
	if len(all) != 6 {
		t.Fatalf("MostCitedPapers(100) returned %d rows, want 6", len(all))
	}
	wantTail := []PaperCount{
		{Paper: "C1", Citations: 0},
		{Paper: "C2", Citations: 0},
		{Paper: "C3", Citations: 0},
	}
	if !reflect.DeepEqual(all[3:], wantTail) {
		t.Errorf("zero-count tail = %+v, want %+v", all[3:], wantTail)
	}
}

func TestMostCitedPapersEdgeCases(t *testing.T) {
	e, _, _ := setup(t, `{"title":"P"}`)

	if got := e.MostCitedPapers(0); len(got) != 0 {
		t.Errorf("MostCitedPapers(0) = %v, want empty", got)
	}
	if got := e.MostCitedPapers(-3); len(got) != 0 {
		t.Errorf("MostCitedPapers(-3) = %v, want empty", got)
	}

	empty, _, _ := setup(t)
	if got := empty.MostCitedPapers(DefaultTopN); got == nil || len(got) != 0 {
		t.Errorf("MostCitedPapers on empty graph = %#v, want empty slice", got)
	}
}

func TestMostCitedPapersCacheInvalidation(t *testing.T) {
	e, in, _ := setup(t, `{"title":"P","citations":"Q"}`)

	first := e.MostCitedPapers(1)
	if !reflect.DeepEqual(first, []PaperCount{{Paper: "Q", Citations: 1}}) {
		t.Fatalf("initial ranking = %+v", first)
	}

	// Mutating the returned slice must not poison the cache.
	first[0].Citations = 99

	var r record.Record
	json.Unmarshal([]byte(`{"title":"R","citations":"P, P2"}`), &r)
	in.Ingest(r)
	json.Unmarshal([]byte(`{"title":"S","citations":"P"}`), &r)
	in.Ingest(r)

	got := e.MostCitedPapers(1)
	want := []PaperCount{{Paper: "P", Citations: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ranking after ingest = %+v, want %+v", got, want)
	}
}

func TestCitationChain(t *testing.T) {
	e, _, _ := setup(t,
		`{"title":"A","authors":"Alice","citations":"B, C"}`,
		`{"title":"B","citations":"D"}`,
		`{"title":"C","citations":"D, A"}`,
	)

	tests := []struct {
		start string
		want  []string
	}{
		{"A", []string{"A", "B", "C", "D"}},
		{"B", []string{"B", "D"}},
		{"D", []string{"D"}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			if got := e.CitationChain(tt.start); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CitationChain(%q) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	e, _, _ := setup(t,
		`{"title":"P","authors":"Alice, Bob","journal":"Nature","citations":"Q"}`,
		`{"title":"Q","authors":"Alice"}`,
	)

	want := Stats{Nodes: 5, Edges: 5, Papers: 2, Authors: 2, Journals: 1, Citations: 1}
	if got := e.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

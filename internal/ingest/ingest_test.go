package ingest

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matsen/citetrack/internal/graph"
	"github.com/matsen/citetrack/internal/logging"
	"github.com/matsen/citetrack/internal/record"
)

// mustRecord decodes a JSON object into a record.
func mustRecord(t *testing.T, s string) record.Record {
	t.Helper()
	var r record.Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatalf("decoding %s: %v", s, err)
	}
	return r
}

func newIngestor() (*Ingestor, *graph.Store) {
	s := graph.NewStore()
	return New(s, logging.Discard()), s
}

func snapshot(s *graph.Store) ([]graph.Node, []graph.Edge) {
	var nodes []graph.Node
	var edges []graph.Edge
	s.View(func(r graph.Reader) {
		nodes = r.Nodes()
		edges = r.Edges()
	})
	return nodes, edges
}

func TestIngestFullRecord(t *testing.T) {
	in, s := newIngestor()
	ok := in.Ingest(mustRecord(t, `{
		"title": "P",
		"authors": "Alice, Bob",
		"journal": "Nature",
		"year": 2020,
		"citations": "Q"
	}`))
	if !ok {
		t.Fatal("Ingest returned false")
	}

	nodes, edges := snapshot(s)
	wantNodes := []graph.Node{
		{ID: "P", Kind: graph.KindPaper, Year: "2020", HasYear: true},
		{ID: "Alice", Kind: graph.KindAuthor},
		{ID: "Bob", Kind: graph.KindAuthor},
		{ID: "Nature", Kind: graph.KindJournal},
		{ID: "Q", Kind: graph.KindPaper},
	}
	if !reflect.DeepEqual(nodes, wantNodes) {
		t.Errorf("nodes = %+v\nwant %+v", nodes, wantNodes)
	}
	wantEdges := []graph.Edge{
		{Source: "P", Target: "Alice", Relation: graph.AuthoredBy},
		{Source: "P", Target: "Bob", Relation: graph.AuthoredBy},
		{Source: "P", Target: "Nature", Relation: graph.InJournal},
		{Source: "P", Target: "Q", Relation: graph.Cites},
	}
	if !reflect.DeepEqual(edges, wantEdges) {
		t.Errorf("edges = %+v\nwant %+v", edges, wantEdges)
	}
}

func TestIngestIdempotent(t *testing.T) {
	in, s := newIngestor()
	r := mustRecord(t, `{"title":"P","authors":"Alice","journal":"J","citations":"Q,R"}`)

	in.Ingest(r)
	nodes1, edges1 := snapshot(s)
	in.Ingest(r)
	nodes2, edges2 := snapshot(s)

	if !reflect.DeepEqual(nodes1, nodes2) {
		t.Errorf("nodes changed on re-ingest:\n%+v\n%+v", nodes1, nodes2)
	}
	if !reflect.DeepEqual(edges1, edges2) {
		t.Errorf("edges changed on re-ingest:\n%+v\n%+v", edges1, edges2)
	}
}

func TestIngestOrderDependence(t *testing.T) {
	in, s := newIngestor()
	res := in.IngestAll([]record.Record{
		mustRecord(t, `{"title":"P","year":2020}`),
		mustRecord(t, `{"title":"P","year":2021}`),
	})
	if res != (Result{Ingested: 2}) {
		t.Errorf("IngestAll result = %+v", res)
	}

	s.View(func(r graph.Reader) {
		n, _ := r.Node("P")
		if n.Year != "2021" {
			t.Errorf("year = %q, want 2021", n.Year)
		}
	})
}

func TestIngestSkipsUntitled(t *testing.T) {
	in, s := newIngestor()
	if in.Ingest(mustRecord(t, `{"authors":"A,B"}`)) {
		t.Error("Ingest of untitled record returned true")
	}

	nodes, edges := snapshot(s)
	if len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("store changed: %d nodes, %d edges", len(nodes), len(edges))
	}
	if s.Version() != 0 {
		t.Errorf("skipped record bumped store version to %d", s.Version())
	}
}

func TestIngestNonStringCitations(t *testing.T) {
	in, s := newIngestor()
	in.Ingest(mustRecord(t, `{"title":"P","citations":42}`))

	nodes, edges := snapshot(s)
	if len(nodes) != 1 || nodes[0].ID != "P" {
		t.Errorf("nodes = %+v, want only P", nodes)
	}
	if len(edges) != 0 {
		t.Errorf("edges = %+v, want none", edges)
	}
}

func TestIngestAuthorSplit(t *testing.T) {
	in, s := newIngestor()
	in.Ingest(mustRecord(t, `{"title":"P","authors":" Alice ,, Bob "}`))

	s.View(func(r graph.Reader) {
		got := r.NodesOfKind(graph.KindAuthor)
		if !reflect.DeepEqual(got, []string{"Alice", "Bob"}) {
			t.Errorf("authors = %v, want [Alice Bob]", got)
		}
		if _, ok := r.Node(""); ok {
			t.Error("node created for empty author token")
		}
	})
}

func TestIngestCitationKeepsYear(t *testing.T) {
	in, s := newIngestor()
	in.IngestAll([]record.Record{
		mustRecord(t, `{"title":"Q","year":1999}`),
		mustRecord(t, `{"title":"P","citations":"Q"}`),
	})

	s.View(func(r graph.Reader) {
		n, _ := r.Node("Q")
		if n.Year != "1999" || n.Kind != graph.KindPaper {
			t.Errorf("Node(Q) = %+v, want paper with year 1999", n)
		}
	})
}

func TestIngestAllCountsSkips(t *testing.T) {
	in, _ := newIngestor()
	res := in.IngestAll([]record.Record{
		mustRecord(t, `{"title":"A"}`),
		mustRecord(t, `{"title":""}`),
		mustRecord(t, `{}`),
		mustRecord(t, `{"title":"B"}`),
	})
	want := Result{Ingested: 2, Skipped: 2}
	if res != want {
		t.Errorf("IngestAll = %+v, want %+v", res, want)
	}
}

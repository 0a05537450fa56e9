// Package ingest turns bibliographic records into citation graph mutations.
package ingest

import (
	"github.com/charmbracelet/log"

	"github.com/matsen/citetrack/internal/graph"
	"github.com/matsen/citetrack/internal/record"
)

// Result counts the outcome of a batch.
type Result struct {
	Ingested int `json:"ingested"`
	Skipped  int `json:"skipped"`
}

// Ingestor writes records into a store.
type Ingestor struct {
	store  *graph.Store
	logger *log.Logger
}

// New returns an Ingestor writing to store. A nil logger uses log.Default().
func New(store *graph.Store, logger *log.Logger) *Ingestor {
	if logger == nil {
		logger = log.Default()
	}
	return &Ingestor{store: store, logger: logger}
}

// Ingest adds one record to the graph. A record without a title is skipped
// and Ingest returns false; malformed fields only drop their own part of the
// record. All mutations for the record are applied in one store update.
func (in *Ingestor) Ingest(r record.Record) bool {
	n, ok := record.Normalize(r)
	if !ok {
		return false
	}

	in.store.Update(func(g *graph.Graph) {
		apply(g, n)
	})
	in.logger.Debug("ingested record",
		"title", n.Title,
		"authors", len(n.Authors),
		"citations", len(n.Citations))
	return true
}

// IngestAll ingests records one at a time in slice order. When a title
// repeats, the later record's year wins.
func (in *Ingestor) IngestAll(records []record.Record) Result {
	var res Result
	for i, r := range records {
		if in.Ingest(r) {
			res.Ingested++
		} else {
			res.Skipped++
			in.logger.Debug("skipped record without title", "index", i)
		}
	}
	return res
}

func apply(g *graph.Graph, n record.Normalized) {
	g.UpsertNode(n.Title, graph.KindPaper, graph.WithYear(n.Year))

	for _, author := range n.Authors {
		g.UpsertNode(author, graph.KindAuthor, graph.Attrs{})
		g.UpsertEdge(n.Title, author, graph.AuthoredBy)
	}

	if n.Journal != "" {
		g.UpsertNode(n.Journal, graph.KindJournal, graph.Attrs{})
		g.UpsertEdge(n.Title, n.Journal, graph.InJournal)
	}

	// Cited papers get no year so an earlier record's year survives.
	for _, cited := range n.Citations {
		g.UpsertNode(cited, graph.KindPaper, graph.Attrs{})
		g.UpsertEdge(n.Title, cited, graph.Cites)
	}
}

// Package query answers structural questions about the citation graph:
// who wrote what, who cites what, and which papers are cited most.
package query

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matsen/citetrack/internal/graph"
)

// DefaultTopN is the ranking length used when callers have no preference.
const DefaultTopN = 5

// rankCacheSize bounds the number of cached rankings.
const rankCacheSize = 64

// PaperCount is one row of a citation ranking.
type PaperCount struct {
	Paper     string `json:"paper"`
	Citations int    `json:"citations"`
}

// Stats summarizes the graph.
type Stats struct {
	Nodes     int `json:"nodes"`
	Edges     int `json:"edges"`
	Papers    int `json:"papers"`
	Authors   int `json:"authors"`
	Journals  int `json:"journals"`
	Citations int `json:"citations"`
}

type rankKey struct {
	version uint64
	topN    int
}

// Engine runs read-only queries against a store.
type Engine struct {
	store *graph.Store
	ranks *lru.Cache[rankKey, []PaperCount]
}

// New returns an engine reading from store.
func New(store *graph.Store) *Engine {
	// lru.New only fails for a non-positive size.
	ranks, err := lru.New[rankKey, []PaperCount](rankCacheSize)
	if err != nil {
		panic(err)
	}
	return &Engine{store: store, ranks: ranks}
}

// FindByAuthor returns the papers with an authored_by edge to author. An
// unknown author yields an empty slice.
func (e *Engine) FindByAuthor(author string) []string {
	out := []string{}
	e.store.View(func(r graph.Reader) {
		for _, id := range r.Predecessors(author) {
			if n, ok := r.Node(id); ok && n.Kind == graph.KindPaper {
				out = append(out, id)
			}
		}
	})
	return out
}

// FindCiters returns the papers that cite title. An unknown title yields
// an empty slice.
func (e *Engine) FindCiters(title string) []string {
	var out []string
	e.store.View(func(r graph.Reader) {
		out = citers(r, title)
	})
	return out
}

func citers(r graph.Reader, title string) []string {
	out := []string{}
	for _, id := range r.Predecessors(title) {
		// A pair's relation can be overwritten, so check it.
		if rel, ok := r.EdgeRelation(id, title); ok && rel == graph.Cites {
			out = append(out, id)
		}
	}
	return out
}

// MostCitedPapers ranks papers by citation count, highest first, and
// returns at most topN rows. Papers with equal counts keep the order in
// which they entered the graph. topN <= 0 returns an empty ranking.
func (e *Engine) MostCitedPapers(topN int) []PaperCount {
	if topN <= 0 {
		return []PaperCount{}
	}

	var ranked []PaperCount
	e.store.View(func(r graph.Reader) {
		key := rankKey{version: e.store.Version(), topN: topN}
		if cached, ok := e.ranks.Get(key); ok {
			ranked = cached
			return
		}
		ranked = rank(r, topN)
		e.ranks.Add(key, ranked)
	})
	out := make([]PaperCount, len(ranked))
	copy(out, ranked)
	return out
}

func rank(r graph.Reader, topN int) []PaperCount {
	papers := r.NodesOfKind(graph.KindPaper)
	counts := make([]PaperCount, 0, len(papers))
	for _, p := range papers {
		counts = append(counts, PaperCount{Paper: p, Citations: len(citers(r, p))})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Citations > counts[j].Citations
	})

	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// CitationChain walks cites edges breadth-first from title and returns
// every paper reached, starting with title itself. An unknown title yields
// an empty slice.
func (e *Engine) CitationChain(title string) []string {
	out := []string{}
	e.store.View(func(r graph.Reader) {
		if _, ok := r.Node(title); !ok {
			return
		}

		visited := map[string]bool{title: true}
		queue := []string{title}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			out = append(out, cur)

			for _, next := range r.Successors(cur) {
				if visited[next] {
					continue
				}
				if rel, _ := r.EdgeRelation(cur, next); rel != graph.Cites {
					continue
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}
	})
	return out
}

// Stats counts nodes by kind and edges overall and by cites relation.
func (e *Engine) Stats() Stats {
	var s Stats
	e.store.View(func(r graph.Reader) {
		s.Nodes = r.NodeCount()
		s.Edges = r.EdgeCount()
		for _, n := range r.Nodes() {
			switch n.Kind {
			case graph.KindPaper:
				s.Papers++
			case graph.KindAuthor:
				s.Authors++
			case graph.KindJournal:
				s.Journals++
			}
		}
		for _, edge := range r.Edges() {
			if edge.Relation == graph.Cites {
				s.Citations++
			}
		}
	})
	return s
}

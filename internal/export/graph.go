package export

import "github.com/matsen/citetrack/internal/graph"

// ExportGraph snapshots every node and edge in store iteration order. The
// snapshot is taken under a single read lock, so it never mixes states.
func ExportGraph(store *graph.Store) *GraphData {
	data := &GraphData{
		Nodes: []Node{},
		Edges: []Edge{},
	}

	store.View(func(r graph.Reader) {
		for _, n := range r.Nodes() {
			data.Nodes = append(data.Nodes, Node{
				ID:   n.ID,
				Kind: string(n.Kind),
				Year: n.Year,
			})
		}
		for _, e := range r.Edges() {
			data.Edges = append(data.Edges, Edge{
				Source:   e.Source,
				Target:   e.Target,
				Relation: string(e.Relation),
			})
		}
	})

	return data
}

// Package export serializes the citation graph for visualization: plain
// JSON, Cytoscape.js elements, a standalone HTML page, and Graphviz DOT/SVG.
package export

// GraphData is a full snapshot of the graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a paper, author or journal.
type Node struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Year string `json:"year,omitempty"`
}

// Edge is a directed relation between two nodes.
type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

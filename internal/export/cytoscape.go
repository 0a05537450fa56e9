package export

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains the node data fields.
type CytoscapeNodeData struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Year  string `json:"year,omitempty"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// ToCytoscape converts GraphData to Cytoscape.js elements.
func (g *GraphData) ToCytoscape() CytoscapeElements {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: CytoscapeNodeData{
			ID:    n.ID,
			Kind:  n.Kind,
			Label: n.ID,
			Year:  n.Year,
		}})
	}

	for i, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{Data: CytoscapeEdgeData{
			ID:       edgeID(i),
			Source:   e.Source,
			Target:   e.Target,
			Relation: e.Relation,
		}})
	}

	return elements
}

// ToCytoscapeJSON converts GraphData to Cytoscape.js JSON format.
func (g *GraphData) ToCytoscapeJSON() (string, error) {
	jsonBytes, err := json.Marshal(g.ToCytoscape())
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID generates an edge ID for the current visualization session.
// Node ids are free text, so the position is used instead of the endpoints.
func edgeID(index int) string {
	return fmt.Sprintf("e%d", index)
}

package graph

import "fmt"

type nodeData struct {
	kind    Kind
	year    string
	hasYear bool
}

// Graph is a directed graph keyed by string ids. It keeps forward and reverse
// adjacency so that both successor and predecessor lookups cost
// O(degree). Graph is not safe for concurrent use; wrap it in a Store.
type Graph struct {
	nodes map[string]*nodeData
	order []string // node insertion order

	succ map[string][]string // per-source successor insertion order
	pred map[string][]string // per-target predecessor insertion order
	rel  map[EdgeKey]Relation
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*nodeData),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
		rel:   make(map[EdgeKey]Relation),
	}
}

// UpsertNode creates the node if absent. If present, its kind is replaced and
// every attribute set in attrs overwrites the stored value.
func (g *Graph) UpsertNode(id string, kind Kind, attrs Attrs) {
	n := g.ensureNode(id)
	n.kind = kind
	if attrs.Year != nil {
		n.year = *attrs.Year
		n.hasYear = true
	}
}

// UpsertEdge records src -> dst with the given relation, creating either
// endpoint as a kindless node if needed. An existing edge for the same
// ordered pair has its relation replaced.
func (g *Graph) UpsertEdge(src, dst string, relation Relation) {
	g.ensureNode(src)
	g.ensureNode(dst)

	key := EdgeKey{Source: src, Target: dst}
	if _, ok := g.rel[key]; !ok {
		g.succ[src] = append(g.succ[src], dst)
		g.pred[dst] = append(g.pred[dst], src)
	}
	g.rel[key] = relation
}

func (g *Graph) ensureNode(id string) *nodeData {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &nodeData{}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// Node returns a snapshot of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return Node{ID: id, Kind: n.kind, Year: n.year, HasYear: n.hasYear}, true
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		out = append(out, Node{ID: id, Kind: n.kind, Year: n.year, HasYear: n.hasYear})
	}
	return out
}

// NodesOfKind returns the ids of all nodes of kind, in insertion order.
func (g *Graph) NodesOfKind(kind Kind) []string {
	var ids []string
	for _, id := range g.order {
		if g.nodes[id].kind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

// Edges returns every edge, grouped by source in node insertion order and
// then by successor insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.rel))
	for _, src := range g.order {
		for _, dst := range g.succ[src] {
			if _, ok := g.nodes[dst]; !ok {
				panic(fmt.Sprintf("graph: edge %q -> %q references unknown node", src, dst))
			}
			out = append(out, Edge{Source: src, Target: dst, Relation: g.rel[EdgeKey{src, dst}]})
		}
	}
	return out
}

// Predecessors returns the ids with an edge into id, in edge creation order.
// An unknown id has no predecessors.
func (g *Graph) Predecessors(id string) []string {
	return append([]string(nil), g.pred[id]...)
}

// Successors returns the ids id has an edge to, in edge creation order.
func (g *Graph) Successors(id string) []string {
	return append([]string(nil), g.succ[id]...)
}

// EdgeRelation reports the relation on src -> dst, if such an edge exists.
func (g *Graph) EdgeRelation(src, dst string) (Relation, bool) {
	r, ok := g.rel[EdgeKey{Source: src, Target: dst}]
	return r, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edge slots.
func (g *Graph) EdgeCount() int { return len(g.rel) }

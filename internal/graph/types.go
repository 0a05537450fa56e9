// Package graph defines the citation network store: typed nodes, directed
// relation edges, and the locking discipline that guards them.
package graph

// Kind classifies a node. All kinds share one identity namespace.
type Kind string

// Node kinds. A node created only as an edge endpoint has KindNone until
// something upserts it with a real kind.
const (
	KindNone    Kind = ""
	KindPaper   Kind = "paper"
	KindAuthor  Kind = "author"
	KindJournal Kind = "journal"
)

// Relation labels a directed edge.
type Relation string

// Edge relations.
const (
	AuthoredBy Relation = "authored_by" // paper -> author
	InJournal  Relation = "in_journal"  // paper -> journal
	Cites      Relation = "cites"       // citing paper -> cited paper
)

// Attrs carries optional node attributes. A nil field means "not provided"
// and leaves any existing value untouched on upsert.
type Attrs struct {
	Year *string
}

// WithYear returns Attrs that set the year, including the empty string.
func WithYear(year string) Attrs {
	return Attrs{Year: &year}
}

// Node is a snapshot of a node's identity and attributes.
type Node struct {
	ID      string
	Kind    Kind
	Year    string
	HasYear bool
}

// Edge is a snapshot of one directed edge.
type Edge struct {
	Source   string
	Target   string
	Relation Relation
}

// EdgeKey identifies an edge slot. There is one slot per ordered pair, so a
// second relation between the same pair replaces the first.
type EdgeKey struct {
	Source string
	Target string
}

// Reader is the read-only view handed to Store.View callbacks.
type Reader interface {
	Node(id string) (Node, bool)
	Nodes() []Node
	NodesOfKind(kind Kind) []string
	Edges() []Edge
	Predecessors(id string) []string
	Successors(id string) []string
	EdgeRelation(src, dst string) (Relation, bool)
	NodeCount() int
	EdgeCount() int
}

package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Node and edge styling for DOT output, keyed by kind and relation.
var (
	dotNodeAttrs = map[string]string{
		"paper":   `shape=ellipse, fillcolor="#1f497d", fontcolor=white`,
		"author":  `shape=box, fillcolor="#f1c40f"`,
		"journal": `shape=diamond, fillcolor="#27ae60", fontcolor=white`,
	}
	dotEdgeColors = map[string]string{
		"cites":       "#2c3e50",
		"authored_by": "#9b59b6",
		"in_journal":  "#2980b9",
	}
)

// ToDOT converts the graph to Graphviz DOT. Node ids are quoted, so any
// title is a valid identifier.
func ToDOT(g *GraphData) string {
	var buf bytes.Buffer
	buf.WriteString("digraph citations {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [style=filled, fillcolor=lightgrey, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := "label=" + dotQuote(n.ID)
		if style, ok := dotNodeAttrs[n.Kind]; ok {
			attrs += ", " + style
		}
		if n.Year != "" {
			attrs += ", tooltip=" + dotQuote(n.Year)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(n.ID), attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := "label=" + dotQuote(e.Relation)
		if color, ok := dotEdgeColors[e.Relation]; ok {
			attrs += ", color=" + dotQuote(color)
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", dotQuote(e.Source), dotQuote(e.Target), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. Only backslashes and
// double quotes are escaped; everything else is passed through.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG renders a DOT graph to SVG in-process using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

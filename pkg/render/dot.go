package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/larsmk/crystalgraph/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// ShowWeights labels every edge with its weight.
	ShowWeights bool

	// ShowIndices prefixes node labels with the atom index. Without it,
	// two atoms of the same element are indistinguishable in the diagram.
	ShowIndices bool
}

// ToDOT converts a structure graph to Graphviz DOT format. Nodes and edges
// are emitted in deterministic index order, so equal graphs produce equal
// DOT source. The result can be rendered with [SVG] or [PNG].
func ToDOT(g *graph.StructureGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for i, el := range g.Elements() {
		label := el
		if opts.ShowIndices {
			label = fmt.Sprintf("%d:%s", i, el)
		}
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.ShowWeights {
			fmt.Fprintf(&buf, "  n%d -- n%d [label=%q];\n", e.From, e.To, fmt.Sprintf("%.4g", e.Weight))
		} else {
			fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcefield/pkg/graph"
)

// DOTOptions configures Graphviz DOT output.
type DOTOptions struct {
	// Directed renders arrowheads on links.
	Directed bool

	// UsePositions pins nodes at their solved coordinates instead of
	// letting Graphviz lay them out.
	UsePositions bool
}

// ToDOT converts a graph to Graphviz DOT. The resulting string can be
// rendered with [GraphvizSVG] or [GraphvizPNG].
func ToDOT(g *graph.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	arrow := "--"
	if opts.Directed {
		buf.WriteString("digraph G {\n")
		arrow = "->"
	} else {
		buf.WriteString("graph G {\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	if opts.UsePositions {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmt.Sprintf("label=%q", n.DisplayLabel())
		if n.Color != "" {
			attrs += fmt.Sprintf(", fillcolor=%q", n.Color)
		}
		if opts.UsePositions && n.Placed() {
			// Graphviz points run y-up; flip so exports match the viewer.
			attrs += fmt.Sprintf(", pos=\"%.2f,%.2f!\"", n.X/72, -n.Y/72)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		fmt.Fprintf(&buf, "  %q %s %q;\n", l.Source, arrow, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphvizSVG renders a DOT graph to SVG using Graphviz.
func GraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.SVG)
}

// GraphvizPNG renders a DOT graph to PNG using Graphviz.
func GraphvizPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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

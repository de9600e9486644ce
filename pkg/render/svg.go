// Package render exports a settled layout as static artifacts: a
// hand-written SVG sink, and DOT output rendered through Graphviz for
// SVG and PNG files.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/forcefield/pkg/graph"
)

const svgHoverCSS = `
    .node { transition: stroke-width 0.15s ease; }
    .node:hover { stroke-width: 3; }
    .node-label { font-family: sans-serif; pointer-events: none; }`

const (
	defaultStroke     = "#1f262e"
	labelColor        = "#e6e6e6"
	defaultBackground = "#11151a"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width      float64
	height     float64
	padding    float64
	background string
	labels     bool
	hover      bool
}

func WithViewport(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}
func WithPadding(p float64) SVGOption      { return func(r *svgRenderer) { r.padding = p } }
func WithBackground(c string) SVGOption    { return func(r *svgRenderer) { r.background = c } }
func WithLabels() SVGOption                { return func(r *svgRenderer) { r.labels = true } }
func WithHoverStyles() SVGOption           { return func(r *svgRenderer) { r.hover = true } }

// RenderSVG draws the graph at its current node positions. The viewBox is
// derived from the node bounds unless an explicit viewport is set.
// Links draw under nodes, labels over both.
func RenderSVG(g *graph.Graph, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	minX, minY, w, h := r.frame(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q/>`+"\n",
			minX, minY, w, h, r.background)
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgHoverCSS)
	}

	renderLinks(&buf, g)
	renderNodes(&buf, g)
	if r.labels {
		renderLabels(&buf, g)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{padding: 20, background: defaultBackground}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) frame(g *graph.Graph) (minX, minY, w, h float64) {
	if r.width > 0 && r.height > 0 {
		return 0, 0, r.width, r.height
	}
	b, ok := g.NodeBounds()
	if !ok {
		return 0, 0, 100, 100
	}
	return b.MinX - r.padding, b.MinY - r.padding,
		b.Width() + 2*r.padding, b.Height() + 2*r.padding
}

func renderLinks(buf *bytes.Buffer, g *graph.Graph) {
	for _, l := range g.Links() {
		src, ok := g.Node(l.Source)
		if !ok || !src.Placed() {
			continue
		}
		dst, ok := g.Node(l.Target)
		if !ok || !dst.Placed() {
			continue
		}
		width := l.Width
		if width <= 0 {
			width = 1
		}
		color := l.Color
		if color == "" {
			color = graph.DefaultLinkColor
		}
		dash := ""
		if l.Style == "dashed" {
			dash = ` stroke-dasharray="6,4"`
		}
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke=%q stroke-width="%.2f"%s/>`+"\n",
			src.X, src.Y, dst.X, dst.Y, color, width, dash)
	}
}

func renderNodes(buf *bytes.Buffer, g *graph.Graph) {
	for _, n := range g.Nodes() {
		if !n.Placed() {
			continue
		}
		color := n.Color
		if color == "" {
			color = graph.DefaultNodeColor
		}
		r := n.Radius()
		switch n.Shape {
		case graph.ShapeSquare:
			fmt.Fprintf(buf, `  <rect class="node" id="node-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill=%q stroke=%q/>`+"\n",
				n.ID, n.X-r, n.Y-r, 2*r, 2*r, color, defaultStroke)
		case graph.ShapeDiamond:
			fmt.Fprintf(buf, `  <path class="node" id="node-%s" d="M %.2f %.2f L %.2f %.2f L %.2f %.2f L %.2f %.2f Z" fill=%q stroke=%q/>`+"\n",
				n.ID, n.X, n.Y-r, n.X+r, n.Y, n.X, n.Y+r, n.X-r, n.Y, color, defaultStroke)
		default:
			fmt.Fprintf(buf, `  <circle class="node" id="node-%s" cx="%.2f" cy="%.2f" r="%.2f" fill=%q stroke=%q/>`+"\n",
				n.ID, n.X, n.Y, r, color, defaultStroke)
		}
	}
}

func renderLabels(buf *bytes.Buffer, g *graph.Graph) {
	for _, n := range g.Nodes() {
		if !n.Placed() {
			continue
		}
		fmt.Fprintf(buf, `  <text class="node-label" x="%.2f" y="%.2f" font-size="10" fill=%q text-anchor="middle">%s</text>`+"\n",
			n.X, n.Y-n.Radius()-4, labelColor, escapeXML(n.DisplayLabel()))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

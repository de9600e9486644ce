// Package render provides static exporters for settled graph layouts.
//
// # Overview
//
// This package turns a solved graph into shareable artifacts. It provides:
//
//   - SVG snapshots with optional labels and hover styling ([RenderSVG])
//   - Graphviz DOT output, optionally carrying solved positions ([ToDOT])
//   - Graphviz-rasterized SVG and PNG ([GraphvizSVG], [GraphvizPNG])
//   - A headless scene backend for static rendering ([Sink])
//
// # SVG Snapshots
//
// [RenderSVG] draws the graph directly from its solved positions, links
// under nodes under labels, using the same colors and shapes the
// interactive view shows:
//
//	svg := render.RenderSVG(g, render.WithLabels(), render.WithHoverStyles())
//
// # Graphviz Output
//
// [ToDOT] emits DOT for interchange with Graphviz tooling. With
// UsePositions set, nodes are pinned at their solved coordinates so neato
// reproduces the force layout:
//
//	dot := render.ToDOT(g, render.DOTOptions{UsePositions: true})
//	png, err := render.GraphvizPNG(ctx, dot)
//
// # Headless Rendering
//
// [Sink] implements [scene.Backend] without a display. The render command
// and the HTTP server run the full engine pipeline against a Sink and then
// export the settled result.
package render

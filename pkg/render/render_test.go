package render

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/scene"
)

func nodeEntry(id string) *scene.Entry {
	return &scene.Entry{Key: id, Kind: scene.KindNode, Node: &graph.Node{ID: id}}
}

func linkEntry(key string) *scene.Entry {
	return &scene.Entry{Key: key, Kind: scene.KindLink, Link: &graph.Link{}}
}

func placedGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []*graph.Node{
		{ID: "app", Label: "App", X: 100, Y: 100, Shape: graph.ShapeCircle},
		{ID: "db", X: 200, Y: 150, Shape: graph.ShapeSquare, Color: "#ff8800"},
		{ID: "cache", X: 150, Y: 50, Shape: graph.ShapeDiamond},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	links := []*graph.Link{
		{Source: "app", Target: "db", Width: 2},
		{Source: "app", Target: "cache", Style: "dashed"},
	}
	for _, l := range links {
		if err := g.AddLink(l); err != nil {
			t.Fatalf("AddLink: %v", err)
		}
	}
	return g
}

func TestRenderSVGShapes(t *testing.T) {
	svg := string(RenderSVG(placedGraph(t)))

	for _, want := range []string{
		`<circle class="node" id="node-app"`,
		`<rect class="node" id="node-db"`,
		`<path class="node" id="node-cache"`,
		`fill="#ff8800"`,
		`stroke-dasharray="6,4"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Count(svg, "<line") != 2 {
		t.Errorf("got %d lines, want 2", strings.Count(svg, "<line"))
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(placedGraph(t),
		WithViewport(640, 480),
		WithLabels(),
		WithHoverStyles(),
	))

	if !strings.Contains(svg, `viewBox="0.0 0.0 640.0 480.0"`) {
		t.Error("explicit viewport not reflected in viewBox")
	}
	if !strings.Contains(svg, ">App</text>") {
		t.Error("label text missing")
	}
	if !strings.Contains(svg, ".node:hover") {
		t.Error("hover styles missing")
	}
}

func TestRenderSVGSkipsUnplacedNodes(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(&graph.Node{ID: "placed", X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(&graph.Node{ID: "floating", X: math.NaN(), Y: math.NaN()}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddLink(&graph.Link{Source: "placed", Target: "floating"}); err != nil {
		t.Fatal(err)
	}

	svg := string(RenderSVG(g))
	if strings.Contains(svg, "node-floating") {
		t.Error("unplaced node rendered")
	}
	if strings.Contains(svg, "<line") {
		t.Error("link to unplaced node rendered")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(&graph.Node{ID: "x", Label: `<a & "b">`, X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(g, WithLabels()))
	if !strings.Contains(svg, "&lt;a &amp; &quot;b&quot;&gt;") {
		t.Errorf("label not escaped:\n%s", svg)
	}
}

func TestToDOT(t *testing.T) {
	g := placedGraph(t)

	undirected := ToDOT(g, DOTOptions{})
	if !strings.HasPrefix(undirected, "graph G {") {
		t.Error("undirected output should start with graph G")
	}
	if !strings.Contains(undirected, `"app" -- "db";`) {
		t.Errorf("edge missing:\n%s", undirected)
	}

	directed := ToDOT(g, DOTOptions{Directed: true})
	if !strings.HasPrefix(directed, "digraph G {") {
		t.Error("directed output should start with digraph G")
	}
	if !strings.Contains(directed, `"app" -> "db";`) {
		t.Errorf("arrow edge missing:\n%s", directed)
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(&graph.Node{ID: "n", X: 144, Y: 72}); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g, DOTOptions{UsePositions: true})
	if !strings.Contains(dot, "layout=neato") {
		t.Error("neato layout not requested")
	}
	// 144pt/72 = 2in, y flipped to point up.
	if !strings.Contains(dot, `pos="2.00,-1.00!"`) {
		t.Errorf("pin attribute missing:\n%s", dot)
	}
}

func TestSinkTracksEntries(t *testing.T) {
	s := NewSink()

	if err := s.CreateNode(nodeEntry("a")); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if err := s.CreateNode(nodeEntry("b")); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if err := s.CreateLink(linkEntry("a->b")); err != nil {
		t.Fatalf("CreateLink: %v", err)
	}

	nodes, links := s.Counts()
	if nodes != 2 || links != 1 {
		t.Errorf("Counts = %d, %d, want 2, 1", nodes, links)
	}

	s.RemoveLink("a->b")
	s.RemoveNode("a")
	nodes, links = s.Counts()
	if nodes != 1 || links != 0 {
		t.Errorf("Counts after removal = %d, %d, want 1, 0", nodes, links)
	}
}

package graph

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawGraph
		wantNodes int
		wantLinks int
		wantWarns int
		check     func(t *testing.T, g *Graph, warnings []Warning)
	}{
		{
			name:      "EmptyNodes",
			raw:       RawGraph{Nodes: []RawNode{}},
			wantNodes: 0,
			wantLinks: 0,
		},
		{
			name: "Simple",
			raw: RawGraph{
				Nodes: []RawNode{{ID: "a"}, {ID: "b"}},
				Links: []RawLink{{Source: "a", Target: "b"}},
			},
			wantNodes: 2,
			wantLinks: 1,
		},
		{
			name: "NumericAndStringIDsUnify",
			raw: RawGraph{
				Nodes: []RawNode{{ID: 1}, {ID: "2"}},
				Links: []RawLink{{Source: "1", Target: 2}},
			},
			wantNodes: 2,
			wantLinks: 1,
			check: func(t *testing.T, g *Graph, _ []Warning) {
				if _, ok := g.Node("1"); !ok {
					t.Error("node with numeric ID 1 not found under canonical \"1\"")
				}
				if !g.LinkedTo("1", "2") {
					t.Error("link between mixed-type endpoints did not resolve")
				}
			},
		},
		{
			name: "DuplicateIDKeepsFirst",
			raw: RawGraph{
				Nodes: []RawNode{
					{ID: "a", Label: "first"},
					{ID: "a", Label: "second"},
				},
			},
			wantNodes: 1,
			wantWarns: 1,
			check: func(t *testing.T, g *Graph, warnings []Warning) {
				n, _ := g.Node("a")
				if n.Label != "first" {
					t.Errorf("label = %q, want %q (first occurrence wins)", n.Label, "first")
				}
				if warnings[0].Code != WarnNodeDuplicate {
					t.Errorf("warning code = %q, want %q", warnings[0].Code, WarnNodeDuplicate)
				}
			},
		},
		{
			name: "DanglingLinkDropped",
			raw: RawGraph{
				Nodes: []RawNode{{ID: "a"}, {ID: "b"}},
				Links: []RawLink{
					{Source: "a", Target: "b"},
					{Source: "a", Target: 99},
				},
			},
			wantNodes: 2,
			wantLinks: 1,
			wantWarns: 1,
			check: func(t *testing.T, _ *Graph, warnings []Warning) {
				if warnings[0].Code != WarnLinkDangling {
					t.Errorf("warning code = %q, want %q", warnings[0].Code, WarnLinkDangling)
				}
			},
		},
		{
			name: "NodeWithoutIDDropped",
			raw: RawGraph{
				Nodes: []RawNode{{ID: nil, Label: "ghost"}, {ID: "real"}},
			},
			wantNodes: 1,
			wantWarns: 1,
		},
		{
			name: "SizeClamped",
			raw: RawGraph{
				Nodes: []RawNode{
					{ID: "tiny", Size: 0.01},
					{ID: "huge", Size: 5000},
				},
			},
			wantNodes: 2,
			check: func(t *testing.T, g *Graph, _ []Warning) {
				tiny, _ := g.Node("tiny")
				if tiny.Size != MinNodeSize {
					t.Errorf("tiny size = %v, want %v", tiny.Size, MinNodeSize)
				}
				huge, _ := g.Node("huge")
				if huge.Size != MaxNodeSize {
					t.Errorf("huge size = %v, want %v", huge.Size, MaxNodeSize)
				}
			},
		},
		{
			name: "MalformedColorReplaced",
			raw: RawGraph{
				Nodes: []RawNode{{ID: "a", Color: "not-a-color"}},
				Links: []RawLink{{Source: "a", Target: "a", Color: "##bad"}},
			},
			wantNodes: 1,
			wantLinks: 1,
			check: func(t *testing.T, g *Graph, _ []Warning) {
				n, _ := g.Node("a")
				if n.Color != DefaultNodeColor {
					t.Errorf("node color = %q, want %q", n.Color, DefaultNodeColor)
				}
				if got := g.Links()[0].Color; got != DefaultLinkColor {
					t.Errorf("link color = %q, want %q", got, DefaultLinkColor)
				}
			},
		},
		{
			name: "ExplicitPositionsPreserved",
			raw: RawGraph{
				Nodes: []RawNode{
					{ID: "placed", X: ptrFloat(10), Y: ptrFloat(-5)},
					{ID: "free"},
				},
			},
			wantNodes: 2,
			check: func(t *testing.T, g *Graph, _ []Warning) {
				placed, _ := g.Node("placed")
				if !placed.Placed() || placed.X != 10 || placed.Y != -5 {
					t.Errorf("placed node at (%v, %v), want (10, -5)", placed.X, placed.Y)
				}
				free, _ := g.Node("free")
				if free.Placed() {
					t.Errorf("free node at (%v, %v), want unplaced", free.X, free.Y)
				}
			},
		},
		{
			name: "UnknownShapeCleared",
			raw: RawGraph{
				Nodes: []RawNode{{ID: "a", Shape: "hexagon"}, {ID: "b", Shape: ShapeDiamond}},
			},
			wantNodes: 2,
			check: func(t *testing.T, g *Graph, _ []Warning) {
				a, _ := g.Node("a")
				if a.Shape != "" {
					t.Errorf("unknown shape = %q, want cleared", a.Shape)
				}
				b, _ := g.Node("b")
				if b.Shape != ShapeDiamond {
					t.Errorf("shape = %q, want %q", b.Shape, ShapeDiamond)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, warnings, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.LinkCount(); got != tt.wantLinks {
				t.Errorf("links = %d, want %d", got, tt.wantLinks)
			}
			if got := len(warnings); got != tt.wantWarns {
				t.Errorf("warnings = %d, want %d: %v", got, tt.wantWarns, warnings)
			}
			if tt.check != nil {
				tt.check(t, g, warnings)
			}
		})
	}
}

func TestNormalizeMissingNodes(t *testing.T) {
	_, _, err := Normalize(RawGraph{})
	if err != ErrMissingNodes {
		t.Fatalf("err = %v, want ErrMissingNodes", err)
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"a", "a", true},
		{"  padded  ", "padded", true},
		{"", "", false},
		{"   ", "", false},
		{nil, "", false},
		{1, "1", true},
		{int64(42), "42", true},
		{1.0, "1", true},
		{1.5, "1.5", true},
		{true, "true", true},
		{struct{}{}, "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalID(%v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNodeBounds(t *testing.T) {
	g := New()
	if _, ok := g.NodeBounds(); ok {
		t.Error("empty graph reported bounds")
	}

	mustAddNode(t, g, &Node{ID: "a", X: 10, Y: 20})
	mustAddNode(t, g, &Node{ID: "b", X: -5, Y: 40})
	mustAddNode(t, g, &Node{ID: "c", X: math.NaN(), Y: math.NaN()})

	b, ok := g.NodeBounds()
	if !ok {
		t.Fatal("bounds not found")
	}
	want := Bounds{MinX: -5, MinY: 20, MaxX: 10, MaxY: 40}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func mustAddNode(t *testing.T, g *Graph, n *Node) {
	t.Helper()
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode(%s): %v", n.ID, err)
	}
}

func ptrFloat(v float64) *float64 { return &v }

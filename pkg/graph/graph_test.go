package graph

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGraphReferentialIntegrity(t *testing.T) {
	g := New()
	mustAddNode(t, g, &Node{ID: "a"})

	if err := g.AddLink(&Link{Source: "a", Target: "missing"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddLink to missing target: err = %v, want ErrUnknownTargetNode", err)
	}
	if err := g.AddLink(&Link{Source: "missing", Target: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddLink from missing source: err = %v, want ErrUnknownSourceNode", err)
	}
	if g.LinkCount() != 0 {
		t.Errorf("links = %d, want 0 after rejected adds", g.LinkCount())
	}
}

func TestGraphRejectsDuplicates(t *testing.T) {
	g := New()
	mustAddNode(t, g, &Node{ID: "a"})
	if err := g.AddNode(&Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate add: err = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.AddNode(&Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID add: err = %v, want ErrInvalidNodeID", err)
	}
}

func TestNodePinning(t *testing.T) {
	n := &Node{ID: "a", X: 1, Y: 2}
	if n.Pinned() {
		t.Error("fresh node reports pinned")
	}
	n.Pin(10, 20)
	if !n.Pinned() {
		t.Error("node not pinned after Pin")
	}
	if *n.FX != 10 || *n.FY != 20 {
		t.Errorf("pin = (%v, %v), want (10, 20)", *n.FX, *n.FY)
	}
	n.Unpin()
	if n.Pinned() {
		t.Error("node still pinned after Unpin")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	g := New()
	mustAddNode(t, g, &Node{ID: "a", Label: "Alpha", X: 1.5, Y: -2.5, Size: 12})
	mustAddNode(t, g, &Node{ID: "b", X: math.NaN(), Y: math.NaN()})
	if err := g.AddLink(&Link{Source: "a", Target: "b", Weight: 2}); err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	got, err := FromDocument(ToDocument(g))
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if got.NodeCount() != 2 || got.LinkCount() != 1 {
		t.Fatalf("round trip = %d nodes %d links, want 2/1", got.NodeCount(), got.LinkCount())
	}

	a, _ := got.Node("a")
	if a.Label != "Alpha" || a.X != 1.5 {
		t.Errorf("node a = %+v, lost attributes in round trip", a)
	}
	// Unplaced nodes serialize with zeroed positions; NaN has no JSON form.
	b, _ := got.Node("b")
	if b.X != 0 || b.Y != 0 {
		t.Errorf("unplaced node = (%v, %v), want (0, 0)", b.X, b.Y)
	}
}

func TestReadRawFilePreservesNumericIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	payload := `{"nodes": [{"id": 1}, {"id": 1.0}], "links": []}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := ReadRawFile(path)
	if err != nil {
		t.Fatalf("ReadRawFile: %v", err)
	}
	// Both spellings canonicalize to the same node, so the second is a duplicate.
	g, warnings, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}
	if len(warnings) != 1 || warnings[0].Code != WarnNodeDuplicate {
		t.Errorf("warnings = %v, want one duplicate warning", warnings)
	}
}

func TestMarshalGraphOutput(t *testing.T) {
	g := New()
	mustAddNode(t, g, &Node{ID: "a", X: 1, Y: 2})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].ID != "a" {
		t.Errorf("document = %+v, want single node a", doc)
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("output not indented")
	}
}

package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Document is the canonical serialization format for a validated graph.
// Node order is preserved so that import → export → re-import is stable.
type Document struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// MarshalGraph converts a graph to pretty-printed JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	doc := ToDocument(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadRaw decodes an unvalidated RawGraph from an io.Reader. Numbers are
// kept as json.Number so identifier canonicalization never loses precision.
func ReadRaw(r io.Reader) (RawGraph, error) {
	var raw RawGraph
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return RawGraph{}, fmt.Errorf("decode: %w", err)
	}
	return raw, nil
}

// ReadRawFile reads an unvalidated RawGraph from a JSON file.
func ReadRawFile(path string) (RawGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawGraph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRaw(f)
}

// =============================================================================
// Document ↔ Graph Conversion
// =============================================================================

// ToDocument flattens a graph into its serialization format. Unplaced nodes
// (NaN coordinates) are exported with zeroed positions since NaN is not
// representable in JSON.
func ToDocument(g *Graph) Document {
	doc := Document{
		Nodes: make([]Node, len(g.nodes)),
		Links: make([]Link, len(g.links)),
	}
	for i, n := range g.nodes {
		doc.Nodes[i] = *n
		if !n.Placed() {
			doc.Nodes[i].X = 0
			doc.Nodes[i].Y = 0
		}
	}
	for i, l := range g.links {
		doc.Links[i] = *l
	}
	return doc
}

// FromDocument rebuilds an arena graph from its serialization format.
// The document must already be referentially valid; use Normalize for
// untrusted input.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	for i := range doc.Nodes {
		n := doc.Nodes[i]
		if err := g.AddNode(&n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for i := range doc.Links {
		l := doc.Links[i]
		if err := g.AddLink(&l); err != nil {
			return nil, fmt.Errorf("add link %s: %w", l.Key(), err)
		}
	}
	return g, nil
}

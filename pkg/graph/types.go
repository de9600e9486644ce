package graph

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty canonical identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same canonical ID already exists. Later duplicates are rejected, never
	// merged into the existing node.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddLink] when the link's
	// source does not resolve to a node in this graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddLink] when the link's
	// target does not resolve to a node in this graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrMissingNodes is returned by [Normalize] when the raw input has no
	// node collection at all. This is the only hard failure in validation;
	// everything else degrades by dropping offenders with warnings.
	ErrMissingNodes = errors.New("graph has no node collection")
)

// Node shapes understood by rendering backends.
const (
	ShapeCircle  = "circle"
	ShapeSquare  = "square"
	ShapeDiamond = "diamond"
)

// DefaultNodeSize is the radius used when a node carries no explicit size.
const DefaultNodeSize = 8.0

// Node is a vertex in the graph together with its kinetic state.
//
// The style fields (Label, Group, Size, Shape, Color) are set once during
// validation and only change when new data replaces the graph. The kinetic
// fields are mutated continuously:
//
//   - X, Y, VX, VY are owned by the layout solver
//   - FX, FY are owned by the interaction layer (drag pinning)
//
// No other component writes them; the scene layer only reads positions.
// A node whose FX/FY are non-nil is pinned: the solver copies the pin into
// X/Y and skips integration for it.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	Group string  `json:"group,omitempty" bson:"group,omitempty"`
	Size  float64 `json:"size,omitempty" bson:"size,omitempty"`
	Shape string  `json:"shape,omitempty" bson:"shape,omitempty"`
	Color string  `json:"color,omitempty" bson:"color,omitempty"`

	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
	VX float64 `json:"-" bson:"-"`
	VY float64 `json:"-" bson:"-"`

	FX *float64 `json:"fx,omitempty" bson:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty" bson:"fy,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Radius returns the node's visual radius, falling back to DefaultNodeSize.
func (n *Node) Radius() float64 {
	if n.Size > 0 {
		return n.Size
	}
	return DefaultNodeSize
}

// Pinned reports whether the node has a pin position set.
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin fixes the node at (x, y). The solver will hold it there until Unpin.
func (n *Node) Pin(x, y float64) {
	n.FX = &x
	n.FY = &y
}

// Unpin releases the node back to solver control.
func (n *Node) Unpin() {
	n.FX = nil
	n.FY = nil
}

// Placed reports whether the node has a usable position. Nodes come out of
// validation unplaced (NaN coordinates) unless the input carried explicit
// coordinates; the solver seeds unplaced nodes when it starts.
func (n *Node) Placed() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y)
}

// Link is a weighted connection between two nodes, held by canonical ID.
// Both endpoints are guaranteed to resolve within the owning graph: links
// that fail this invariant never survive validation.
type Link struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Weight float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty"`
}

// Key returns the stable identity used for scene reconciliation.
func (l *Link) Key() string { return l.Source + "->" + l.Target }

// Graph is an ordered, identifier-indexed arena of nodes plus the links
// connecting them. The solver, scene, and interaction layers all hold
// references into this single store rather than copies, so positions can
// never diverge between layout and rendering.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use; the engine drives all mutation from a single frame loop.
type Graph struct {
	nodes []*Node
	index map[string]int
	links []*Link
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode appends a node to the arena. Returns ErrInvalidNodeID for an empty
// ID or ErrDuplicateNodeID when the canonical ID is already taken.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddLink appends a link. Both endpoints must already resolve to nodes in
// this graph; otherwise ErrUnknownSourceNode or ErrUnknownTargetNode is
// returned and the graph is unchanged.
func (g *Graph) AddLink(l *Link) error {
	if _, ok := g.index[l.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.index[l.Target]; !ok {
		return ErrUnknownTargetNode
	}
	g.links = append(g.links, l)
	return nil
}

// Node returns the node with the given canonical ID.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns the backing node slice in insertion order. Callers share the
// arena: mutating a returned node mutates the graph. Do not add or remove
// elements.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Links returns the backing link slice in insertion order.
func (g *Graph) Links() []*Link { return g.links }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// NodeIDs returns all canonical IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Bounds holds an axis-aligned bounding box in logical space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the vertical midpoint.
func (b Bounds) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// NodeBounds computes the bounding box of all placed nodes. The second
// return value is false when no node has a usable position yet.
func (g *Graph) NodeBounds() (Bounds, bool) {
	var b Bounds
	found := false
	for _, n := range g.nodes {
		if !n.Placed() {
			continue
		}
		if !found {
			b = Bounds{MinX: n.X, MinY: n.Y, MaxX: n.X, MaxY: n.Y}
			found = true
			continue
		}
		b.MinX = min(b.MinX, n.X)
		b.MinY = min(b.MinY, n.Y)
		b.MaxX = max(b.MaxX, n.X)
		b.MaxY = max(b.MaxY, n.Y)
	}
	return b, found
}

// LinkedTo reports whether two nodes are directly connected, in either
// direction.
func (g *Graph) LinkedTo(a, b string) bool {
	return slices.ContainsFunc(g.links, func(l *Link) bool {
		return (l.Source == a && l.Target == b) || (l.Source == b && l.Target == a)
	})
}

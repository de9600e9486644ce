package force

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/graph"
)

// quadtree is a Barnes-Hut spatial partition over node positions. Internal
// cells aggregate the mass (body count) and center of mass of their
// subtree so distant clusters can be approximated by a single body.
type quadtree struct {
	// Cell extent (square).
	x, y, half float64

	// Leaf payload. A leaf with node == nil is empty.
	node *graph.Node

	children *[4]*quadtree

	// Aggregate over the subtree.
	mass   float64
	cx, cy float64
}

// buildQuadtree inserts all placed nodes into a square tree covering their
// bounding box.
func buildQuadtree(nodes []*graph.Node) *quadtree {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	half := math.Max(maxX-minX, maxY-minY)/2 + 1
	root := &quadtree{
		x:    (minX + maxX) / 2,
		y:    (minY + maxY) / 2,
		half: half,
	}
	for _, n := range nodes {
		root.insert(n, 0)
	}
	return root
}

// maxQuadDepth caps subdivision so coincident points cannot recurse forever.
const maxQuadDepth = 32

func (q *quadtree) insert(n *graph.Node, depth int) {
	// Update aggregates on the way down.
	total := q.mass + 1
	q.cx = (q.cx*q.mass + n.X) / total
	q.cy = (q.cy*q.mass + n.Y) / total
	q.mass = total

	if q.children == nil {
		if q.node == nil {
			q.node = n
			return
		}
		if depth >= maxQuadDepth {
			// Degenerate stack of coincident points; the aggregate
			// already accounts for the body.
			return
		}
		old := q.node
		q.node = nil
		q.subdivide()
		q.child(old).insert(old, depth+1)
	}
	q.child(n).insert(n, depth+1)
}

func (q *quadtree) subdivide() {
	h := q.half / 2
	q.children = &[4]*quadtree{
		{x: q.x - h, y: q.y - h, half: h},
		{x: q.x + h, y: q.y - h, half: h},
		{x: q.x - h, y: q.y + h, half: h},
		{x: q.x + h, y: q.y + h, half: h},
	}
}

func (q *quadtree) child(n *graph.Node) *quadtree {
	i := 0
	if n.X >= q.x {
		i |= 1
	}
	if n.Y >= q.y {
		i |= 2
	}
	return q.children[i]
}

// accumulate walks the tree and returns the unit-strength repulsive force
// on n. A cell whose (width/distance)² falls below theta² is treated as a
// single body at its center of mass.
func (q *quadtree) accumulate(n *graph.Node, theta2 float64) (fx, fy float64) {
	if q.mass == 0 {
		return 0, 0
	}

	dx := n.X - q.cx
	dy := n.Y - q.cy
	dist2 := dx*dx + dy*dy

	width := q.half * 2
	if q.children != nil && width*width > theta2*dist2 {
		// Too close for the far-field approximation: descend.
		for _, c := range q.children {
			cfx, cfy := c.accumulate(n, theta2)
			fx += cfx
			fy += cfy
		}
		return fx, fy
	}

	if q.node == n && q.mass == 1 {
		return 0, 0
	}

	mass := q.mass
	if q.children == nil && q.node == n {
		// Leaf stacking n with coincident bodies: exclude self.
		mass--
		if mass == 0 {
			return 0, 0
		}
	}

	if dist2 == 0 {
		// Coincident with the aggregate: deterministic nudge.
		dx, dy, dist2 = 1e-3, 0, 1e-6
	}

	inv := mass / (dist2 * math.Sqrt(dist2))
	return dx * inv, dy * inv
}

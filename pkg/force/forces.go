package force

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/graph"
)

// Force accumulation. Each function reads positions and writes only
// velocities; positions change exclusively in the integration phase.

// applyCharge accumulates the pairwise repulsive force. The magnitude
// between two nodes at distance d is ChargeStrength/d² along their
// connecting line, scaled by the remaining kinetic budget.
//
// A Barnes-Hut quadtree approximates far-field contributions in
// O(n log n); clusters farther than width/theta act as a single body at
// their center of mass. This is a correctness-preserving optimization of
// the exact pairwise sum, not a behavior change.
func (s *Simulation) applyCharge(nodes []*graph.Node) {
	if len(nodes) < 2 {
		return
	}

	qt := buildQuadtree(nodes)
	strength := s.params.ChargeStrength * s.alpha
	theta2 := s.params.Theta * s.params.Theta

	for _, n := range nodes {
		fx, fy := qt.accumulate(n, theta2)
		n.VX += fx * strength
		n.VY += fy * strength
	}
}

// applyLinks accumulates the spring force along every link, proportional to
// the difference between current distance and the configured rest length.
// Link weight multiplies the spring strength when set.
func (s *Simulation) applyLinks() {
	rest := s.params.LinkDistance
	for _, l := range s.g.Links() {
		src, okS := s.g.Node(l.Source)
		dst, okT := s.g.Node(l.Target)
		if !okS || !okT {
			continue
		}
		dx := dst.X - src.X
		dy := dst.Y - src.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		k := s.params.LinkStrength * s.alpha
		if l.Weight > 0 {
			k *= l.Weight
		}
		f := k * (dist - rest) / dist
		fx := f * dx
		fy := f * dy
		src.VX += fx
		src.VY += fy
		dst.VX -= fx
		dst.VY -= fy
	}
}

// applyCenter accumulates the weak centering force pulling the layout
// toward the bounds center, preventing drift.
func (s *Simulation) applyCenter(nodes []*graph.Node) {
	k := s.params.CenterStrength * s.alpha
	if k == 0 {
		return
	}
	cx, cy := s.bounds.CenterX(), s.bounds.CenterY()
	for _, n := range nodes {
		n.VX += (cx - n.X) * k
		n.VY += (cy - n.Y) * k
	}
}

// applyCollide resolves overlaps: any pair closer than the sum of their
// radii receives an outward push proportional to the overlap depth.
func (s *Simulation) applyCollide(nodes []*graph.Node) {
	fallback := s.params.CollideRadius
	radius := func(n *graph.Node) float64 {
		if n.Size > 0 {
			return n.Size
		}
		return fallback
	}

	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			minDist := radius(a) + radius(b)
			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				// Coincident pair: nudge deterministically apart.
				dx, dy, dist = minDist, 0, minDist
			}
			overlap := (minDist - dist) / dist * 0.5 * s.alpha
			fx := dx * overlap
			fy := dy * overlap
			a.VX -= fx
			a.VY -= fy
			b.VX += fx
			b.VY += fy
		}
	}
}

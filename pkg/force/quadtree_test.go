package force

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/forcefield/pkg/graph"
)

// exactRepulsion is the O(n²) reference the quadtree approximates.
func exactRepulsion(nodes []*graph.Node, n *graph.Node) (fx, fy float64) {
	for _, m := range nodes {
		if m == n {
			continue
		}
		dx := n.X - m.X
		dy := n.Y - m.Y
		dist2 := dx*dx + dy*dy
		if dist2 == 0 {
			continue
		}
		inv := 1 / (dist2 * math.Sqrt(dist2))
		fx += dx * inv
		fy += dy * inv
	}
	return fx, fy
}

func TestQuadtreeMatchesExactWithThetaZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	nodes := make([]*graph.Node, 60)
	for i := range nodes {
		nodes[i] = &graph.Node{
			ID: string(rune('A' + i)),
			X:  rng.Float64() * 500,
			Y:  rng.Float64() * 500,
		}
	}

	qt := buildQuadtree(nodes)
	for _, n := range nodes {
		gotX, gotY := qt.accumulate(n, 0)
		wantX, wantY := exactRepulsion(nodes, n)
		if math.Abs(gotX-wantX) > 1e-9 || math.Abs(gotY-wantY) > 1e-9 {
			t.Fatalf("node %s: got (%v, %v), want (%v, %v)", n.ID, gotX, gotY, wantX, wantY)
		}
	}
}

func TestQuadtreeApproximationStaysClose(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	nodes := make([]*graph.Node, 200)
	for i := range nodes {
		nodes[i] = &graph.Node{
			X: rng.Float64() * 1000,
			Y: rng.Float64() * 1000,
		}
	}

	qt := buildQuadtree(nodes)
	theta2 := DefaultTheta * DefaultTheta
	for _, n := range nodes {
		gotX, gotY := qt.accumulate(n, theta2)
		wantX, wantY := exactRepulsion(nodes, n)

		wantMag := math.Hypot(wantX, wantY)
		errMag := math.Hypot(gotX-wantX, gotY-wantY)
		if wantMag > 0 && errMag/wantMag > 0.25 {
			t.Fatalf("relative error %v too large (got (%v, %v), want (%v, %v))",
				errMag/wantMag, gotX, gotY, wantX, wantY)
		}
	}
}

func TestQuadtreeCoincidentNodes(t *testing.T) {
	nodes := []*graph.Node{
		{ID: "a", X: 10, Y: 10},
		{ID: "b", X: 10, Y: 10},
		{ID: "c", X: 10, Y: 10},
	}
	qt := buildQuadtree(nodes)

	fx, fy := qt.accumulate(nodes[0], DefaultTheta*DefaultTheta)
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		t.Fatalf("force on coincident stack = (%v, %v), want finite", fx, fy)
	}
	if fx == 0 && fy == 0 {
		t.Error("coincident stack produced no separating force")
	}
}

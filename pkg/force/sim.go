package force

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/graph"
)

// State is the solver lifecycle state.
type State int

const (
	// Idle means the simulation is not ticking: either never started or
	// explicitly stopped.
	Idle State = iota
	// Running means Step advances the simulation and fires tick callbacks.
	Running
	// Converged means alpha fell below the threshold; positions are stable
	// until Reheat or new data raises the budget again.
	Converged
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	default:
		return "idle"
	}
}

// TickFunc is invoked after every completed tick. It is the only coupling
// point between the solver and the rendering layer.
type TickFunc func()

// Simulation is the iterative force solver. It owns the kinetic fields
// (X, Y, VX, VY) of the nodes in its graph arena; pin fields (FX, FY) are
// written by the interaction layer and only read here.
//
// The simulation is frame-driven and single-threaded: a host loop calls
// Step once per frame. Every tick reads all current positions during force
// accumulation before writing any new ones during integration, so no
// order-dependent bias can creep in within a tick.
//
// The zero value is not usable - use New.
type Simulation struct {
	g      *graph.Graph
	params Params
	bounds graph.Bounds

	alpha float64
	state State

	ticks     map[int]TickFunc
	nextTick  int
	tickCount uint64
}

// New creates a simulation over the given arena. The graph may be nil until
// SetGraph is called. Bounds provide the centering target.
func New(g *graph.Graph, params Params, bounds graph.Bounds) *Simulation {
	return &Simulation{
		g:      g,
		params: params.Normalized(),
		bounds: bounds,
		ticks:  make(map[int]TickFunc),
	}
}

// OnTick registers a callback fired after each tick and returns a cancel
// function. Cancel deregisters the callback before returning, so no call
// can arrive afterwards.
func (s *Simulation) OnTick(fn TickFunc) (cancel func()) {
	id := s.nextTick
	s.nextTick++
	s.ticks[id] = fn
	return func() { delete(s.ticks, id) }
}

// SetGraph replaces the arena the solver integrates over. Positions of the
// new graph's nodes are left untouched; call Start or Reheat to resume
// motion.
func (s *Simulation) SetGraph(g *graph.Graph) {
	s.g = g
}

// Graph returns the arena currently under simulation.
func (s *Simulation) Graph() *graph.Graph { return s.g }

// Params returns the normalized parameters in effect.
func (s *Simulation) Params() Params { return s.params }

// State returns the current lifecycle state.
func (s *Simulation) State() State { return s.state }

// Alpha returns the remaining kinetic budget.
func (s *Simulation) Alpha() float64 { return s.alpha }

// TickCount returns the number of ticks executed since Start.
func (s *Simulation) TickCount() uint64 { return s.tickCount }

// Start seeds unplaced nodes, resets the kinetic budget to 1, and moves the
// solver to Running. Already-placed nodes keep their positions.
func (s *Simulation) Start() {
	s.seed()
	s.alpha = 1
	s.state = Running
}

// Stop halts the simulation and deregisters all tick callbacks. It is
// idempotent and guarantees that no callback fires after it returns.
func (s *Simulation) Stop() {
	s.state = Idle
	clear(s.ticks)
}

// Reheat raises alpha to at least intensity (clamped to (0, 1]) without
// discarding current positions, resuming motion after convergence or a data
// change. A non-positive intensity defaults to 0.3.
func (s *Simulation) Reheat(intensity float64) {
	if intensity <= 0 {
		intensity = 0.3
	}
	intensity = math.Min(intensity, 1)
	s.alpha = math.Max(s.alpha, intensity)
	if s.state != Idle {
		s.state = Running
	}
}

// Pin fixes a node at (x, y). Its position is excluded from integration
// until Unpin; velocity bookkeeping around it is skipped.
func (s *Simulation) Pin(id string, x, y float64) bool {
	n, ok := s.g.Node(id)
	if !ok {
		return false
	}
	n.Pin(x, y)
	return true
}

// Unpin releases a pinned node back to solver control.
func (s *Simulation) Unpin(id string) bool {
	n, ok := s.g.Node(id)
	if !ok {
		return false
	}
	n.Unpin()
	return true
}

// Step advances the simulation by one tick. It is a no-op unless the state
// is Running. Returns true while the simulation remains Running after the
// tick, false once converged or stopped.
func (s *Simulation) Step() bool {
	if s.state != Running || s.g == nil {
		return false
	}

	nodes := s.g.Nodes()
	if len(nodes) > 0 {
		s.applyCharge(nodes)
		s.applyLinks()
		s.applyCenter(nodes)
		s.applyCollide(nodes)
		s.integrate(nodes)
	}

	s.alpha *= 1 - s.params.AlphaDecay
	s.tickCount++

	for _, fn := range s.ticks {
		fn()
	}

	if s.alpha < s.params.AlphaMin {
		s.state = Converged
		return false
	}
	return true
}

// RunToConvergence steps until the solver leaves the Running state or
// maxTicks elapse. Intended for static export paths; interactive hosts
// drive Step from their own frame loop.
func (s *Simulation) RunToConvergence(maxTicks int) uint64 {
	start := s.tickCount
	for i := 0; i < maxTicks && s.Step(); i++ {
	}
	return s.tickCount - start
}

// seed assigns deterministic phyllotaxis positions around the bounds center
// to nodes that have no usable position yet.
func (s *Simulation) seed() {
	if s.g == nil {
		return
	}
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	cx, cy := s.bounds.CenterX(), s.bounds.CenterY()
	for i, n := range s.g.Nodes() {
		if n.Placed() {
			continue
		}
		r := 10 * math.Sqrt(float64(i)+0.5)
		a := goldenAngle * float64(i)
		n.X = cx + r*math.Cos(a)
		n.Y = cy + r*math.Sin(a)
		n.VX = 0
		n.VY = 0
	}
}

// integrate applies damping and writes new positions. Pinned nodes are
// snapped to their pin and their velocities zeroed.
func (s *Simulation) integrate(nodes []*graph.Node) {
	decay := s.params.VelocityDecay
	for _, n := range nodes {
		if n.Pinned() {
			n.X = *n.FX
			n.Y = *n.FY
			n.VX = 0
			n.VY = 0
			continue
		}
		n.VX *= decay
		n.VY *= decay
		n.X += n.VX
		n.Y += n.VY
	}
}

// Package interact routes pointer input to graph elements.
//
// The dispatcher owns hit-testing, hover exclusivity, the click-versus-drag
// distinction, and the drag lifecycle. All pointer coordinates arrive in
// screen space and are mapped through the view transform before any
// comparison with node positions.
package interact

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcefield/pkg/force"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/view"
)

// EventType identifies a dispatched interaction event.
type EventType string

const (
	EventNodeClick       EventType = "nodeClick"
	EventNodeHoverEnter  EventType = "nodeHoverEnter"
	EventNodeHoverLeave  EventType = "nodeHoverLeave"
	EventLinkClick       EventType = "linkClick"
	EventBackgroundClick EventType = "backgroundClick"
	EventDragStart       EventType = "dragStart"
	EventDragEnd         EventType = "dragEnd"
)

// Event carries a dispatched interaction and its subject. Node is set for
// node events, Link for link events, neither for background events.
// Logical is the pointer position mapped into graph coordinates.
type Event struct {
	Type    EventType
	Node    *graph.Node
	Link    *graph.Link
	Logical view.Point
}

// Handler receives dispatched events. A panicking handler is recovered and
// logged; it never takes down the input loop.
type Handler func(Event)

// DragIntensity is the reheat applied when a drag starts, so the layout
// adapts around the held node.
const DragIntensity = 0.3

// clickSlop is the maximum screen-space distance the pointer may travel
// between down and up for the gesture to count as a click.
const clickSlop = 3.0

// linkHitSlack widens link hit-testing beyond the stroke width so thin
// links remain clickable.
const linkHitSlack = 4.0

// Options tune dispatcher behavior.
type Options struct {
	// KeepPinned leaves a dragged node fixed at its drop position instead
	// of releasing it back to the solver.
	KeepPinned bool
}

// Dispatcher translates raw pointer events into graph interaction events.
//
// At most one node is hovered at a time; moving onto a new node emits the
// leave for the previous one before the enter for the next. While a drag is
// active, hover and hit-testing are suspended and every move updates the
// dragged node's pin.
type Dispatcher struct {
	g       *graph.Graph
	sim     *force.Simulation
	vm      *view.Manager
	logger  *log.Logger
	opts    Options
	handler Handler

	hovered *graph.Node

	dragging   *graph.Node
	wasPinned  bool
	downScreen view.Point
	moved      bool
}

// NewDispatcher wires a dispatcher over the shared graph, solver, and view.
// A nil logger falls back to the package default.
func NewDispatcher(g *graph.Graph, sim *force.Simulation, vm *view.Manager, logger *log.Logger, opts Options) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{g: g, sim: sim, vm: vm, logger: logger, opts: opts}
}

// SetGraph swaps the graph after a data reload. Any active drag or hover
// refers to the old arena and is cleared without emitting events.
func (d *Dispatcher) SetGraph(g *graph.Graph) {
	d.g = g
	d.hovered = nil
	d.dragging = nil
	d.moved = false
}

// OnEvent registers the event handler, replacing any previous one.
func (d *Dispatcher) OnEvent(h Handler) { d.handler = h }

// Hovered returns the currently hovered node, if any.
func (d *Dispatcher) Hovered() *graph.Node { return d.hovered }

// Dragging returns the node under an active drag, if any.
func (d *Dispatcher) Dragging() *graph.Node { return d.dragging }

// PointerDown begins a gesture at a screen position. Hitting a node starts
// a drag: the node is pinned at its current position and the solver is
// reheated so neighbors adjust.
func (d *Dispatcher) PointerDown(sx, sy float64) {
	d.downScreen = view.Point{X: sx, Y: sy}
	d.moved = false

	p := d.vm.ToLogical(view.Point{X: sx, Y: sy})
	n := d.HitNode(p)
	if n == nil {
		return
	}
	d.dragging = n
	d.wasPinned = n.Pinned()
	d.sim.Pin(n.ID, n.X, n.Y)
	d.sim.Reheat(DragIntensity)
	d.emit(Event{Type: EventDragStart, Node: n, Logical: p})
}

// PointerMove updates hover state, or the drag pin when a drag is active.
func (d *Dispatcher) PointerMove(sx, sy float64) {
	if dx, dy := sx-d.downScreen.X, sy-d.downScreen.Y; dx*dx+dy*dy > clickSlop*clickSlop {
		d.moved = true
	}

	p := d.vm.ToLogical(view.Point{X: sx, Y: sy})
	if d.dragging != nil {
		d.sim.Pin(d.dragging.ID, p.X, p.Y)
		return
	}
	d.updateHover(p)
}

// PointerUp ends the gesture. A drag releases the node (unless KeepPinned
// or the node was fixed before the drag); a short press resolves to a
// node, link, or background click.
func (d *Dispatcher) PointerUp(sx, sy float64) {
	p := d.vm.ToLogical(view.Point{X: sx, Y: sy})

	if n := d.dragging; n != nil {
		d.dragging = nil
		if !d.opts.KeepPinned && !d.wasPinned {
			d.sim.Unpin(n.ID)
		}
		if d.moved {
			d.emit(Event{Type: EventDragEnd, Node: n, Logical: p})
			return
		}
		// Press and release without travel: a click, not a drag.
		d.emit(Event{Type: EventDragEnd, Node: n, Logical: p})
		d.emit(Event{Type: EventNodeClick, Node: n, Logical: p})
		return
	}

	if d.moved {
		return
	}
	if n := d.HitNode(p); n != nil {
		d.emit(Event{Type: EventNodeClick, Node: n, Logical: p})
		return
	}
	if l := d.HitLink(p); l != nil {
		d.emit(Event{Type: EventLinkClick, Link: l, Logical: p})
		return
	}
	d.emit(Event{Type: EventBackgroundClick, Logical: p})
}

// PointerLeave clears hover when the pointer exits the surface.
func (d *Dispatcher) PointerLeave() {
	if d.hovered != nil {
		prev := d.hovered
		d.hovered = nil
		d.emit(Event{Type: EventNodeHoverLeave, Node: prev})
	}
}

// CancelDrag aborts an active drag, restoring the node's pre-drag pin
// state without emitting a drag end.
func (d *Dispatcher) CancelDrag() {
	if n := d.dragging; n != nil {
		d.dragging = nil
		if !d.wasPinned {
			d.sim.Unpin(n.ID)
		}
	}
}

// HitNode returns the topmost node whose radius covers the logical point.
// Later nodes draw above earlier ones, so the scan runs back to front.
func (d *Dispatcher) HitNode(p view.Point) *graph.Node {
	nodes := d.g.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if !n.Placed() {
			continue
		}
		dx, dy := p.X-n.X, p.Y-n.Y
		r := n.Radius()
		if dx*dx+dy*dy <= r*r {
			return n
		}
	}
	return nil
}

// HitLink returns the first link whose segment passes within its stroke
// width (plus slack) of the logical point.
func (d *Dispatcher) HitLink(p view.Point) *graph.Link {
	for _, l := range d.g.Links() {
		src, ok := d.g.Node(l.Source)
		if !ok || !src.Placed() {
			continue
		}
		dst, ok := d.g.Node(l.Target)
		if !ok || !dst.Placed() {
			continue
		}
		tol := l.Width/2 + linkHitSlack
		if distToSegment(p.X, p.Y, src.X, src.Y, dst.X, dst.Y) <= tol {
			return l
		}
	}
	return nil
}

func (d *Dispatcher) updateHover(p view.Point) {
	n := d.HitNode(p)
	if n == d.hovered {
		return
	}
	if d.hovered != nil {
		d.emit(Event{Type: EventNodeHoverLeave, Node: d.hovered})
	}
	d.hovered = n
	if n != nil {
		d.emit(Event{Type: EventNodeHoverEnter, Node: n, Logical: p})
	}
}

func (d *Dispatcher) emit(ev Event) {
	if d.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked", "event", ev.Type, "panic", r)
		}
	}()
	d.handler(ev)
}

// distToSegment returns the distance from (px,py) to the segment
// (x1,y1)-(x2,y2).
func distToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

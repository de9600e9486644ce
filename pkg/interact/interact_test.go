package interact

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcefield/pkg/force"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/view"
)

// fixture builds a dispatcher over two placed nodes and one link, with an
// identity view transform so screen and logical coordinates agree.
func fixture(t *testing.T, opts Options) (*Dispatcher, *graph.Graph, *force.Simulation, *[]Event) {
	t.Helper()
	g := graph.New()
	for _, n := range []*graph.Node{
		{ID: "a", X: 100, Y: 100, Size: 10},
		{ID: "b", X: 200, Y: 100, Size: 10},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddLink(&graph.Link{Source: "a", Target: "b", Width: 2}); err != nil {
		t.Fatal(err)
	}

	sim := force.New(g, force.Params{}, graph.Bounds{MaxX: 400, MaxY: 300})
	vm := view.NewManager(0, 0)
	d := NewDispatcher(g, sim, vm, log.New(io.Discard), opts)

	events := &[]Event{}
	d.OnEvent(func(ev Event) { *events = append(*events, ev) })
	return d, g, sim, events
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestHoverIsExclusive(t *testing.T) {
	d, _, _, events := fixture(t, Options{})

	d.PointerMove(100, 100)
	if d.Hovered() == nil || d.Hovered().ID != "a" {
		t.Fatalf("hovered = %v, want a", d.Hovered())
	}

	// Straight onto the other node: leave precedes enter.
	d.PointerMove(200, 100)
	if d.Hovered() == nil || d.Hovered().ID != "b" {
		t.Fatalf("hovered = %v, want b", d.Hovered())
	}

	got := eventTypes(*events)
	want := []EventType{EventNodeHoverEnter, EventNodeHoverLeave, EventNodeHoverEnter}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
	if (*events)[1].Node.ID != "a" || (*events)[2].Node.ID != "b" {
		t.Error("leave/enter carried wrong nodes")
	}
}

func TestHoverLeaveOnEmptySpace(t *testing.T) {
	d, _, _, events := fixture(t, Options{})

	d.PointerMove(100, 100)
	d.PointerMove(300, 250)

	if d.Hovered() != nil {
		t.Errorf("hovered = %v over empty space", d.Hovered())
	}
	got := eventTypes(*events)
	if len(got) != 2 || got[1] != EventNodeHoverLeave {
		t.Errorf("events = %v, want enter then leave", got)
	}
}

func TestDragLifecycle(t *testing.T) {
	d, g, sim, events := fixture(t, Options{})
	sim.Start()

	d.PointerDown(100, 100)
	if d.Dragging() == nil || d.Dragging().ID != "a" {
		t.Fatalf("dragging = %v, want a", d.Dragging())
	}
	n, _ := g.Node("a")
	if !n.Pinned() {
		t.Fatal("node not pinned on drag start")
	}
	if sim.Alpha() < DragIntensity {
		t.Errorf("alpha = %v, want at least %v after drag reheat", sim.Alpha(), DragIntensity)
	}

	d.PointerMove(150, 130)
	if *n.FX != 150 || *n.FY != 130 {
		t.Errorf("pin = (%v, %v), want pointer position (150, 130)", *n.FX, *n.FY)
	}

	d.PointerUp(150, 130)
	if d.Dragging() != nil {
		t.Error("drag still active after release")
	}
	if n.Pinned() {
		t.Error("node still pinned after release without KeepPinned")
	}

	got := eventTypes(*events)
	if len(got) != 2 || got[0] != EventDragStart || got[1] != EventDragEnd {
		t.Errorf("events = %v, want dragStart then dragEnd", got)
	}
}

func TestDragKeepPinned(t *testing.T) {
	d, g, _, _ := fixture(t, Options{KeepPinned: true})

	d.PointerDown(100, 100)
	d.PointerMove(160, 140)
	d.PointerUp(160, 140)

	n, _ := g.Node("a")
	if !n.Pinned() {
		t.Error("node released despite KeepPinned")
	}
}

func TestDragPreservesPriorPin(t *testing.T) {
	d, g, _, _ := fixture(t, Options{})
	n, _ := g.Node("a")
	n.Pin(100, 100)

	d.PointerDown(100, 100)
	d.PointerMove(170, 120)
	d.PointerUp(170, 120)

	if !n.Pinned() {
		t.Error("pre-drag pin lost after drag")
	}
}

func TestClickVersusDragSlop(t *testing.T) {
	tests := []struct {
		name      string
		upX, upY  float64
		wantClick bool
	}{
		{"NoTravel", 100, 100, true},
		{"WithinSlop", 102, 100, true},
		{"BeyondSlop", 110, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _, events := fixture(t, Options{})

			d.PointerDown(100, 100)
			d.PointerMove(tt.upX, tt.upY)
			d.PointerUp(tt.upX, tt.upY)

			var clicked bool
			for _, ev := range *events {
				if ev.Type == EventNodeClick {
					clicked = true
				}
			}
			if clicked != tt.wantClick {
				t.Errorf("click = %v, want %v (events %v)", clicked, tt.wantClick, eventTypes(*events))
			}
		})
	}
}

func TestClickResolution(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want EventType
	}{
		{"OnNode", 100, 100, EventNodeClick},
		{"OnLink", 150, 100, EventLinkClick},
		{"OnBackground", 300, 250, EventBackgroundClick},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _, events := fixture(t, Options{})

			d.PointerDown(tt.x, tt.y)
			d.PointerUp(tt.x, tt.y)

			got := eventTypes(*events)
			found := false
			for _, typ := range got {
				if typ == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHitNodeTopmostWins(t *testing.T) {
	d, g, _, _ := fixture(t, Options{})
	// A third node drawn over "a": later insertion wins the hit.
	if err := g.AddNode(&graph.Node{ID: "top", X: 100, Y: 100, Size: 10}); err != nil {
		t.Fatal(err)
	}

	n := d.HitNode(view.Point{X: 100, Y: 100})
	if n == nil || n.ID != "top" {
		t.Errorf("hit = %v, want top", n)
	}
}

func TestHitLinkRespectsSlack(t *testing.T) {
	d, _, _, _ := fixture(t, Options{})

	// Link a-b runs along y=100 with width 2: tolerance is 1 + slack.
	if l := d.HitLink(view.Point{X: 150, Y: 104}); l == nil {
		t.Error("hit missed within slack")
	}
	if l := d.HitLink(view.Point{X: 150, Y: 112}); l != nil {
		t.Error("hit landed outside tolerance")
	}
}

func TestPanicInHandlerIsRecovered(t *testing.T) {
	d, _, _, _ := fixture(t, Options{})
	d.OnEvent(func(Event) { panic("handler bug") })

	// Must not propagate.
	d.PointerMove(100, 100)
	d.PointerDown(100, 100)
	d.PointerUp(100, 100)
}

func TestCancelDragRestoresState(t *testing.T) {
	d, g, _, events := fixture(t, Options{})

	d.PointerDown(100, 100)
	d.CancelDrag()

	n, _ := g.Node("a")
	if n.Pinned() {
		t.Error("node still pinned after cancel")
	}
	if d.Dragging() != nil {
		t.Error("drag still active after cancel")
	}
	for _, ev := range *events {
		if ev.Type == EventDragEnd {
			t.Error("cancel emitted a drag end")
		}
	}
}

func TestSetGraphClearsInteractionState(t *testing.T) {
	d, _, _, _ := fixture(t, Options{})
	d.PointerMove(100, 100)
	d.PointerDown(100, 100)

	g2 := graph.New()
	d.SetGraph(g2)

	if d.Hovered() != nil || d.Dragging() != nil {
		t.Error("stale hover or drag survived a graph swap")
	}
}

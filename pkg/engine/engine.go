// Package engine wires the validator, force solver, scene synchronizer,
// view transform, and interaction dispatcher into a single facade.
//
// The engine is frame-driven and single-goroutine: the host calls Tick
// once per frame, which advances the solver and pushes positions into the
// scene. Data changes go through SetData, which reconciles the scene
// before any further position push, so a push can never touch an entry
// the join has not created yet.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/forcefield/pkg/force"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/interact"
	"github.com/matzehuels/forcefield/pkg/observability"
	"github.com/matzehuels/forcefield/pkg/scene"
	"github.com/matzehuels/forcefield/pkg/view"
)

// Engine owns one graph arena and every subsystem that reads or writes it.
// The arena is the single authoritative position store: solver, scene, and
// dispatcher all hold references into it and never copy positions.
type Engine struct {
	id     string
	cfg    Config
	logger *log.Logger

	g     *graph.Graph
	sim   *force.Simulation
	vm    *view.Manager
	scene *scene.Synchronizer
	disp  *interact.Dispatcher

	cancelTick func()
	viewport   view.Size
	warnings   []graph.Warning
	err        error
	forcesOn   bool
	closed     bool
}

// New creates an engine rendering into the given scene backend.
// A nil logger falls back to the package default.
func New(backend scene.Backend, cfg Config, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	if logger == nil {
		logger = log.Default()
	}

	g := graph.New()
	bounds := graph.Bounds{MinX: 0, MinY: 0, MaxX: cfg.Width, MaxY: cfg.Height}
	sim := force.New(g, cfg.Force, bounds)
	vm := view.NewManager(cfg.MinZoom, cfg.MaxZoom)
	vm.SetMaxFitZoom(cfg.MaxFitZoom)
	sc := scene.NewSynchronizer(backend, logger)
	disp := interact.NewDispatcher(g, sim, vm, logger, interact.Options{KeepPinned: cfg.KeepPinned})

	e := &Engine{
		id:       uuid.NewString(),
		cfg:      cfg,
		logger:   logger,
		g:        g,
		sim:      sim,
		vm:       vm,
		scene:    sc,
		disp:     disp,
		viewport: view.Size{Width: cfg.Width, Height: cfg.Height},
		forcesOn: true,
	}
	e.bindScene()
	return e, nil
}

// ID returns the unique identifier of this engine instance.
func (e *Engine) ID() string { return e.id }

// Graph returns the authoritative arena.
func (e *Engine) Graph() *graph.Graph { return e.g }

// Simulation exposes the solver for pin and state inspection.
func (e *Engine) Simulation() *force.Simulation { return e.sim }

// View exposes the transform manager.
func (e *Engine) View() *view.Manager { return e.vm }

// Dispatcher exposes the interaction dispatcher for pointer routing.
func (e *Engine) Dispatcher() *interact.Dispatcher { return e.disp }

// Warnings returns the validation warnings from the last SetData.
func (e *Engine) Warnings() []graph.Warning { return e.warnings }

// Err returns the current recoverable error state, combining scene and
// engine failures. It clears when new valid data arrives.
func (e *Engine) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.scene.Err()
}

// OnEvent registers the interaction event handler.
func (e *Engine) OnEvent(h interact.Handler) { e.disp.OnEvent(h) }

// OnZoomChange registers the transform change callback.
func (e *Engine) OnZoomChange(fn view.ChangeFunc) { e.vm.OnChange(fn) }

// SetViewport records the drawing surface size used by fit and center.
func (e *Engine) SetViewport(w, h float64) {
	e.viewport = view.Size{Width: w, Height: h}
}

// SetData validates raw input, replaces the arena, reconciles the scene,
// and restarts the solver. Validation warnings never halt the load; only a
// wholly absent node collection fails. A successful load clears any prior
// error state.
func (e *Engine) SetData(ctx context.Context, raw graph.RawGraph) error {
	if e.closed {
		return nil
	}
	observability.Engine().OnNormalizeStart(ctx, len(raw.Nodes), len(raw.Links))
	g, warnings, err := graph.Normalize(raw)
	observability.Engine().OnNormalizeComplete(ctx, countOrZero(g), linkCountOrZero(g), len(warnings), err)
	if err != nil {
		e.err = err
		return err
	}
	for _, w := range warnings {
		e.logger.Warn("graph input dropped", "code", w.Code, "detail", w.Message)
	}

	e.g = g
	e.warnings = warnings
	e.sim.SetGraph(g)
	e.disp.SetGraph(g)

	if err := e.scene.Reconcile(g); err != nil {
		observability.Engine().OnReconcileComplete(ctx, 0, 0, err)
		e.err = err
		return err
	}
	nodes, links := e.scene.EntryCount()
	observability.Engine().OnReconcileComplete(ctx, nodes, links, nil)

	if e.forcesOn {
		e.sim.Start()
		e.bindScene()
	}
	e.applyZoomOnLoad()
	e.err = nil
	return nil
}

// Tick advances the solver one step. Position propagation into the scene
// happens through the solver's tick callback. Returns false once the
// solver has nothing left to do.
func (e *Engine) Tick() bool {
	if e.closed || e.err != nil {
		return false
	}
	return e.sim.Step()
}

// Solve runs the solver to convergence, for hosts that want a settled
// layout without a frame loop.
func (e *Engine) Solve(ctx context.Context, maxTicks int) uint64 {
	observability.Engine().OnSolveStart(ctx, e.g.NodeCount(), e.g.LinkCount())
	start := time.Now()
	if e.sim.State() == force.Idle {
		e.sim.Start()
		e.bindScene()
	}
	ticks := e.sim.RunToConvergence(maxTicks)
	observability.Engine().OnSolveComplete(ctx, ticks, e.sim.Alpha(), time.Since(start))
	return ticks
}

// ZoomIn zooms one step toward the viewport center.
func (e *Engine) ZoomIn() { e.zoomBy(e.cfg.ZoomStep) }

// ZoomOut zooms one step away from the viewport center.
func (e *Engine) ZoomOut() { e.zoomBy(1 / e.cfg.ZoomStep) }

// FitToView fits the current node bounds into the viewport. No-op when no
// node has a position yet or the bounds are degenerate.
func (e *Engine) FitToView() {
	b, ok := e.g.NodeBounds()
	if !ok {
		return
	}
	e.vm.FitToBounds(view.Bounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY},
		e.viewport, e.cfg.FitPadding)
}

// ResetView restores the identity transform.
func (e *Engine) ResetView() { e.vm.Reset() }

// GetCurrentZoom returns the current scale factor.
func (e *Engine) GetCurrentZoom() float64 { return e.vm.Scale() }

// ToggleForces pauses or resumes the solver, returning the new running
// state. Pausing keeps positions; resuming reheats so motion restarts.
func (e *Engine) ToggleForces() bool {
	if e.forcesOn {
		e.forcesOn = false
		e.sim.Stop()
		e.cancelTick = nil // Stop cleared all callbacks
		return false
	}
	e.forcesOn = true
	e.sim.Start()
	e.bindScene()
	return true
}

// ForcesEnabled reports whether the solver is active.
func (e *Engine) ForcesEnabled() bool { return e.forcesOn }

// Close stops the solver and releases every scene entry. Idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.sim.Stop()
	e.cancelTick = nil
	e.scene.Release()
}

// bindScene registers the position push as the solver tick callback.
// Stop deregisters all callbacks, so each restart re-binds.
func (e *Engine) bindScene() {
	if e.cancelTick != nil {
		e.cancelTick()
	}
	e.cancelTick = e.sim.OnTick(e.scene.PushPositions)
}

func (e *Engine) zoomBy(factor float64) {
	focal := view.Point{X: e.viewport.Width / 2, Y: e.viewport.Height / 2}
	e.vm.ApplyDelta(factor, focal)
}

func (e *Engine) applyZoomOnLoad() {
	switch e.cfg.ZoomOnLoad {
	case ZoomFit:
		e.FitToView()
	case ZoomCenter:
		b, ok := e.g.NodeBounds()
		if !ok {
			return
		}
		e.vm.CenterOn(view.Point{X: b.CenterX(), Y: b.CenterY()}, e.viewport)
	case ZoomCustom:
		if e.cfg.CustomZoom != nil {
			e.vm.Set(*e.cfg.CustomZoom)
		}
	case ZoomNone:
	}
}

func countOrZero(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.NodeCount()
}

func linkCountOrZero(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.LinkCount()
}

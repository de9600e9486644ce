// Package pkg provides the core libraries for Forcefield graph visualization.
//
// # Overview
//
// Forcefield lays out node-link graphs with a force simulation and keeps a
// rendering backend in sync with the moving positions. The pkg directory is
// organized around the stages of that pipeline:
//
//  1. [graph] - Input validation and the in-memory graph model
//  2. [force] - The iterative force solver (charge, springs, centering, collision)
//  3. [view] - Pan/zoom transforms between logical and screen space
//  4. [scene] - Keyed reconciliation against a rendering backend
//  5. [interact] - Pointer events (hover, click, drag) in logical space
//  6. [engine] - The facade tying all of the above together
//
// # Architecture
//
// The typical data flow through Forcefield:
//
//	Raw graph JSON
//	         ↓
//	    [graph] package (validate + normalize)
//	         ↓
//	    [force] package (iterative layout solve)
//	         ↓
//	    [scene] package (sync positions to a backend)
//	         ↓
//	    terminal canvas / SVG / PNG / DOT output
//
// # Quick Start
//
// Validate a graph, solve its layout, and render an SVG snapshot:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/forcefield/pkg/engine"
//	    "github.com/matzehuels/forcefield/pkg/graph"
//	    "github.com/matzehuels/forcefield/pkg/render"
//	)
//
//	raw, _ := graph.ReadRawFile("graph.json")
//	eng, _ := engine.New(render.NewSink(), engine.DefaultConfig(), nil)
//	defer eng.Close()
//
//	_ = eng.SetData(context.Background(), raw)
//	eng.Solve(context.Background(), 1000)
//	svg := render.RenderSVG(eng.Graph(), render.WithLabels())
//
// # Main Packages
//
// [graph] - Validation and normalization of raw node-link input: canonical
// string IDs, duplicate and dangling-reference rejection, attribute
// clamping with warnings, and JSON document serialization.
//
// [force] - The solver. Charge repulsion through a Barnes-Hut quadtree,
// spring forces along links, centering, and pairwise collision, all scaled
// by a decaying alpha. Supports pinning, reheating, and convergence
// detection.
//
// [view] - The zoom/pan transform manager. Converts between logical layout
// coordinates and screen pixels, with focal-point zoom, clamping, and
// fit-to-bounds.
//
// [scene] - Keyed synchronization of graph elements against a rendering
// [scene.Backend]: structural reconciliation on data changes and cheap
// position-only pushes every solver tick.
//
// [interact] - Translates pointer input into hover, click, and drag
// semantics, pinning dragged nodes and reheating the solver.
//
// [engine] - The facade used by the CLI and server: configuration, data
// loading, tick driving, zoom commands, and lifecycle.
//
// ## Persistence and Serving
//
// [store] - Named graph persistence with memory, file, Redis, and MongoDB
// backends behind one interface.
//
// [cache] - TTL byte caching with file and null backends, used for
// downloaded graph files.
//
// [httputil] - HTTP fetching with retries and response caching, used to
// load graph files from URLs.
//
// ## Output
//
// [render] - SVG and Graphviz (DOT/PNG) exporters, and the headless
// [render.Sink] backend for static rendering.
//
// ## Support
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hook interfaces for instrumenting the engine, store,
// and renderers.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/force/...      # Specific package
//	go test -run Example         # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/graph
// [force]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/force
// [view]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/view
// [scene]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/scene
// [interact]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/interact
// [engine]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/engine
// [store]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/httputil
// [render]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/buildinfo
package pkg

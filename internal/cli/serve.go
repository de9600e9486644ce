package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/engine"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/render"
	"github.com/matzehuels/forcefield/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	maxTicks int
}

// newServeCmd creates the serve command: an HTTP server exposing stored
// graphs as validated JSON, settled layouts, and SVG snapshots.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", maxTicks: defaultMaxTicks}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored graphs and layouts over HTTP",
		Long: `Serve starts an HTTP server over the configured graph store.

Endpoints:
  GET /graphs                 list stored graph names
  GET /graphs/{name}          validated graph JSON (positions as stored)
  GET /graphs/{name}/layout   settled layout JSON (solver run to convergence)
  GET /graphs/{name}/svg      SVG snapshot of the settled layout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", opts.maxTicks, "solver tick budget per layout request")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	s := &server{cfg: cfg, store: st, maxTicks: opts.maxTicks}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/graphs", s.handleList)
	r.Get("/graphs/{name}", s.handleGraph)
	r.Get("/graphs/{name}/layout", s.handleLayout)
	r.Get("/graphs/{name}/svg", s.handleSVG)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Infof("Serving on %s (store: %s)", opts.addr, cfg.Store.Backend)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type server struct {
	cfg      engine.Config
	store    store.Store
	maxTicks int
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, map[string]any{"graphs": names})
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, warnings, ok := s.loadValidated(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"graph":    graph.ToDocument(g),
		"warnings": warningsOrEmpty(warnings),
	})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, warnings, ok := s.solved(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"graph":    graph.ToDocument(g),
		"warnings": warningsOrEmpty(warnings),
	})
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	g, _, ok := s.solved(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(render.RenderSVG(g, render.WithLabels(), render.WithHoverStyles()))
}

// loadValidated fetches a stored graph and runs it through validation.
func (s *server) loadValidated(w http.ResponseWriter, r *http.Request) (*graph.Graph, []graph.Warning, bool) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("graph %q not found", name))
		return nil, nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}

	g, warnings, err := graph.Normalize(rawFromDocument(doc.Graph))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, nil, false
	}
	return g, warnings, true
}

// solved loads a graph and runs the solver to convergence. Layouts are
// computed per request; previously computed positions are never reused.
func (s *server) solved(w http.ResponseWriter, r *http.Request) (*graph.Graph, []graph.Warning, bool) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("graph %q not found", name))
		return nil, nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}

	eng, err := engine.New(render.NewSink(), s.cfg, loggerFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	defer eng.Close()

	if err := eng.SetData(r.Context(), rawFromDocument(doc.Graph)); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, nil, false
	}
	eng.Solve(r.Context(), s.maxTicks)

	return eng.Graph(), eng.Warnings(), true
}

func warningsOrEmpty(ws []graph.Warning) []graph.Warning {
	if ws == nil {
		return []graph.Warning{}
	}
	return ws
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/engine"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/render"
)

// defaultMaxTicks bounds the solver run for static export.
const defaultMaxTicks = 1000

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "svg", "png", "dot", "json"
	labels   bool     // draw node labels in the SVG output
	directed bool     // render arrowheads in DOT output
	maxTicks int      // solver tick budget
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true, "json": true}

// newRenderCmd creates the render command: run the solver to convergence
// and export the settled layout.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{maxTicks: defaultMaxTicks}

	cmd := &cobra.Command{
		Use:   "render [file|store:name]",
		Short: "Render a settled force layout to static files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "draw node labels in SVG output")
	cmd.Flags().BoolVar(&opts.directed, "directed", false, "render arrowheads in DOT output")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", opts.maxTicks, "solver tick budget")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'dot', or 'json')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// Remote inputs fall back to the last URL path segment so exports land in
// the working directory.
func basePath(output, input string) string {
	if output == "" {
		if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
			input = path.Base(strings.SplitN(input, "?", 2)[0])
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimPrefix(base, "store:")
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the graph, runs the solver to convergence, and writes
// every requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	logger.Infof("Rendering %s", input)

	raw, err := loadRawGraph(ctx, cfg, input)
	if err != nil {
		return err
	}

	eng, err := engine.New(render.NewSink(), cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.SetData(ctx, raw); err != nil {
		return err
	}
	g := eng.Graph()
	logger.Infof("Loaded graph: %d nodes, %d links (%d warnings)",
		g.NodeCount(), g.LinkCount(), len(eng.Warnings()))

	p := newProgress(logger)
	sp := newSpinnerWithContext(ctx, "Solving layout...")
	sp.Start()
	ticks := eng.Solve(ctx, opts.maxTicks)
	sp.Stop()
	if sp.Cancelled() {
		return ctx.Err()
	}
	p.done(fmt.Sprintf("Solved layout in %d ticks", ticks))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		data, err := exportFormat(ctx, g, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
		printFile(path)
	}
	return nil
}

// exportFormat produces the bytes for one output format.
func exportFormat(ctx context.Context, g *graph.Graph, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case "svg":
		svgOpts := []render.SVGOption{render.WithHoverStyles()}
		if opts.labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		return render.RenderSVG(g, svgOpts...), nil
	case "dot":
		return []byte(render.ToDOT(g, render.DOTOptions{Directed: opts.directed, UsePositions: true})), nil
	case "png":
		dot := render.ToDOT(g, render.DOTOptions{Directed: opts.directed, UsePositions: true})
		return render.GraphvizPNG(ctx, dot)
	case "json":
		return graph.MarshalGraph(g)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

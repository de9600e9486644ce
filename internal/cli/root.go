package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/buildinfo"
	"github.com/matzehuels/forcefield/pkg/cache"
	"github.com/matzehuels/forcefield/pkg/engine"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/httputil"
	"github.com/matzehuels/forcefield/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "forcefield"

// defaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const defaultConfigFile = "forcefield.toml"

// configKey is the context key for the loaded configuration.
const configKey ctxKey = 1

// Execute runs the forcefield CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (view, render,
// serve, store), configures logging based on the --verbose flag, loads the
// TOML configuration, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger and config are attached to the context and accessible to all
// commands via loggerFromContext and configFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Forcefield renders graphs as interactive force-directed layouts",
		Long:         `Forcefield is a CLI tool for laying out node-link graphs with a force simulation: nodes repel, links attract, and the layout settles into a stable diagram you can pan, zoom, drag, and export.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := engine.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "path to TOML config file")

	root.AddCommand(newViewCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newStoreCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// withConfig returns a new context with the given config attached.
func withConfig(ctx context.Context, cfg engine.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, falling back to defaults.
func configFromContext(ctx context.Context) engine.Config {
	if cfg, ok := ctx.Value(configKey).(engine.Config); ok {
		return cfg
	}
	return engine.DefaultConfig()
}

// openStore creates the store backend named in the config.
func openStore(ctx context.Context, cfg engine.Config) (store.Store, error) {
	return store.Open(ctx, store.Config{
		Backend:       cfg.Store.Backend,
		Dir:           cfg.Store.Dir,
		RedisAddr:     cfg.Store.RedisAddr,
		MongoURI:      cfg.Store.MongoURI,
		MongoDatabase: cfg.Store.MongoDatabase,
	})
}

// remoteCacheTTL controls how long fetched remote graph files stay fresh.
const remoteCacheTTL = 15 * time.Minute

// loadRawGraph reads raw graph input from a file path, an http(s) URL, or
// from the store when the argument has a "store:" prefix.
func loadRawGraph(ctx context.Context, cfg engine.Config, arg string) (graph.RawGraph, error) {
	const storePrefix = "store:"
	switch {
	case strings.HasPrefix(arg, storePrefix):
		st, err := openStore(ctx, cfg)
		if err != nil {
			return graph.RawGraph{}, err
		}
		defer st.Close()

		doc, err := st.Get(ctx, arg[len(storePrefix):])
		if err != nil {
			return graph.RawGraph{}, err
		}
		return rawFromDocument(doc.Graph), nil

	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return fetchRawGraph(ctx, arg)
	}
	return graph.ReadRawFile(arg)
}

// fetchRawGraph downloads a raw graph file, caching responses so repeated
// invocations against the same URL skip the network.
func fetchRawGraph(ctx context.Context, url string) (graph.RawGraph, error) {
	var c cache.Cache
	if dir, err := os.UserCacheDir(); err == nil {
		fc, err := cache.NewFileCache(filepath.Join(dir, appName, "remote"))
		if err != nil {
			loggerFromContext(ctx).Debugf("Remote cache unavailable: %v", err)
		} else {
			c = fc
		}
	}
	var raw graph.RawGraph
	if err := httputil.FetchJSON(ctx, nil, c, remoteCacheTTL, url, &raw); err != nil {
		return graph.RawGraph{}, err
	}
	return raw, nil
}

// rawFromDocument converts a stored document back into raw validator input.
func rawFromDocument(doc graph.Document) graph.RawGraph {
	raw := graph.RawGraph{
		Nodes: make([]graph.RawNode, len(doc.Nodes)),
		Links: make([]graph.RawLink, len(doc.Links)),
	}
	for i, n := range doc.Nodes {
		raw.Nodes[i] = graph.RawNode{
			ID: n.ID, Label: n.Label, Group: n.Group,
			Size: n.Size, Shape: n.Shape, Color: n.Color,
			X: ptr(n.X), Y: ptr(n.Y),
		}
	}
	for i, l := range doc.Links {
		raw.Links[i] = graph.RawLink{
			Source: l.Source, Target: l.Target,
			Weight: l.Weight, Width: l.Width, Style: l.Style, Color: l.Color,
		}
	}
	return raw
}

func ptr(v float64) *float64 { return &v }

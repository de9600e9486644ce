package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/store"
)

// newStoreCmd creates the store command group for managing named graphs.
func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named graphs in the configured store backend",
	}

	cmd.AddCommand(newStorePutCmd())
	cmd.AddCommand(newStoreGetCmd())
	cmd.AddCommand(newStoreListCmd())
	cmd.AddCommand(newStoreDeleteCmd())

	return cmd
}

func newStorePutCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Validate a graph file and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			raw, err := graph.ReadRawFile(args[0])
			if err != nil {
				return err
			}
			g, warnings, err := graph.Normalize(raw)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				printWarning("%s", w.Message)
			}

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			doc := &store.Document{Name: name, Graph: graph.ToDocument(g)}
			if err := st.Put(ctx, doc); err != nil {
				return err
			}

			printSuccess("Stored %s", StyleHighlight.Render(doc.Name))
			printStats(g.NodeCount(), g.LinkCount(), len(warnings))
			printNextStep("View it", fmt.Sprintf("%s view store:%s", appName, doc.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "document name (generated when empty)")
	return cmd
}

func newStoreGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Fetch a stored graph and write it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				printError("No graph named %q", args[0])
				return err
			}
			if err != nil {
				return err
			}

			g, err := graph.FromDocument(doc.Graph)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = doc.Name + ".json"
			}
			if err := graph.WriteGraphFile(g, path); err != nil {
				return err
			}
			printSuccess("Fetched %s", StyleHighlight.Render(doc.Name))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <name>.json)")
	return cmd
}

func newStoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graph names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, name := range names {
				printKeyValue(cfg.Store.Backend, name)
			}
			return nil
		},
	}
}

func newStoreDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

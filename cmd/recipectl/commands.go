package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"recipes-app/core/bootstrap"
	"recipes-app/core/domain"
	"recipes-app/core/interfaces"
	"recipes-app/core/offline"
	"recipes-app/web/page"
)

// recipeStore is the part of the recipe service the CLI drives
type recipeStore interface {
	GetRecipes(ctx context.Context) (domain.Collection, error)
	ClearCache(ctx context.Context) error
	Sources() []string
	CacheKey() string
}

// app holds what a command needs to run
type app struct {
	recipes      recipeStore
	logger       interfaces.Logger
	publicURL    string
	workerScript string
	close        func() error
}

type appFactory func() (*app, error)

func newRootCmd(factory appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "recipectl",
		Short: "Inspect and manage the recipe store",
		Long: `recipectl reads the same environment as the recipes server
(CACHE_TYPE, REDIS_ADDRESS, SQLITE_PATH, RECIPE_URLS, RECIPE_CACHE_KEY, ...).

Available subcommands:
  list    - Print the recipe collection, fetching it on a cache miss
  clear   - Remove the cached collection
  sources - Print the configured source URLs
  render  - Print the rendered recipe page`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newListCmd(factory),
		newClearCmd(factory),
		newSourcesCmd(factory),
		newRenderCmd(factory),
	)
	return root
}

// withApp builds the app, runs fn and releases the store
func withApp(factory appFactory, fn func(a *app) error) error {
	a, err := factory()
	if err != nil {
		return err
	}
	if a.close != nil {
		defer a.close()
	}
	return fn(a)
}

func newListCmd(factory appFactory) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the recipe collection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, func(a *app) error {
				recipes, err := a.recipes.GetRecipes(cmd.Context())
				if err != nil {
					return fmt.Errorf("loading recipes: %w", err)
				}

				out, err := recipes.Encode()
				if err != nil {
					return err
				}
				if pretty {
					var buf bytes.Buffer
					if err := json.Indent(&buf, out, "", "  "); err != nil {
						return err
					}
					out = buf.Bytes()
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newClearCmd(factory appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached recipe collection",
		Long:  "Remove the cached recipe collection so the next load fetches every source again.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, func(a *app) error {
				if err := a.recipes.ClearCache(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "cleared %q\n", a.recipes.CacheKey())
				return err
			})
		},
	}
}

func newSourcesCmd(factory appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Print the configured recipe source URLs in fetch order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, func(a *app) error {
				for _, src := range a.recipes.Sources() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), src); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newRenderCmd(factory appFactory) *cobra.Command {
	var noWorker bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the recipe page as the server would serve it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, func(a *app) error {
				p, err := page.New(a.publicURL, page.WithServiceWorker(!noWorker))
				if err != nil {
					return err
				}

				registrar := offline.NewRegistrar(a.logger, a.workerScript)
				if err := bootstrap.New(a.recipes, registrar, a.logger).Init(cmd.Context(), p); err != nil {
					return err
				}
				return p.Render(cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().BoolVar(&noWorker, "no-worker", false, "render without service worker registration")
	return cmd
}

// Package cli implements the patchwork command-line interface: plan, show,
// list, render, and serve, as a single Cobra root command.
package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/icecake0141/patchwork-beta/internal/app"
	"github.com/icecake0141/patchwork-beta/internal/infra/metrics"
	"github.com/icecake0141/patchwork-beta/internal/infra/sqlite"
)

// Root builds the patchwork root command and all of its subcommands.
func Root() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "patchwork",
		Short:         "Deterministic physical-termination planner for rack-to-rack patch cabling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a patchwork.toml config file")

	root.AddCommand(
		newPlanCommand(&configPath),
		newShowCommand(&configPath),
		newListCommand(&configPath),
		newRenderCommand(&configPath),
		newServeCommand(&configPath),
	)
	return root
}

// openPlanner loads config and opens the revision store + metrics bundle a
// command needs. Callers are responsible for closing the returned store.
func openPlanner(configPath string) (*app.Planner, *sqlite.DB, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	m := metrics.New(prometheus.NewRegistry())
	return app.NewPlanner(store, m), store, nil
}

package cli

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/icecake0141/patchwork-beta/internal/api"
	"github.com/icecake0141/patchwork-beta/internal/app"
	"github.com/icecake0141/patchwork-beta/internal/infra/metrics"
	"github.com/icecake0141/patchwork-beta/internal/infra/sqlite"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			registry := prometheus.NewRegistry()
			m := metrics.New(registry)
			planner := app.NewPlanner(store, m)
			server := api.NewServer(planner, m, registry)

			fmt.Fprintf(cmd.OutOrStdout(), "patchwork serving on %s\n", cfg.Server.Address)
			return http.ListenAndServe(cfg.Server.Address, server.Handler())
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/icecake0141/patchwork-beta/internal/app"
)

func newPlanCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <project.json>",
		Short: "Validate, allocate, and persist a new revision for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("cli: open project file: %w", err)
			}
			defer file.Close()

			project, err := app.LoadProject(file)
			if err != nil {
				return err
			}

			planner, store, err := openPlanner(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			revision, err := planner.Save(project)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "REVISION\tPANELS\tMODULES\tCABLES\tSESSIONS\n")
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
				revision.RevisionID,
				len(revision.Result.Panels), len(revision.Result.Modules),
				len(revision.Result.Cables), len(revision.Result.Sessions),
			)
			return w.Flush()
		},
	}
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <revision-id>",
		Short: "Print a stored revision's summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, store, err := openPlanner(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			revision, err := planner.Get(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "REVISION_ID\t%s\n", revision.RevisionID)
			fmt.Fprintf(w, "PROJECT_ID\t%s\n", revision.ProjectID)
			fmt.Fprintf(w, "INPUT_HASH\t%s\n", revision.InputHash)
			fmt.Fprintf(w, "CREATED_AT\t%s\n", revision.CreatedAt.Format("2006-01-02T15:04:05Z"))
			fmt.Fprintf(w, "PANELS\t%d\n", len(revision.Result.Panels))
			fmt.Fprintf(w, "MODULES\t%d\n", len(revision.Result.Modules))
			fmt.Fprintf(w, "CABLES\t%d\n", len(revision.Result.Cables))
			fmt.Fprintf(w, "SESSIONS\t%d\n", len(revision.Result.Sessions))
			return w.Flush()
		},
	}
}

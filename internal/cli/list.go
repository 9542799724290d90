package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored revisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, store, err := openPlanner(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			revisions, err := planner.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "REVISION_ID\tPROJECT_ID\tCREATED_AT\tSESSIONS\n")
			for _, revision := range revisions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					revision.RevisionID, revision.ProjectID,
					revision.CreatedAt.Format("2006-01-02T15:04:05Z"),
					len(revision.Result.Sessions),
				)
			}
			return w.Flush()
		},
	}
}

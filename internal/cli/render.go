package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/infra/render"
)

func newRenderCommand(configPath *string) *cobra.Command {
	var format string
	var view string
	var outPath string

	cmd := &cobra.Command{
		Use:   "render <revision-id>",
		Short: "Emit a rendered artifact for a stored revision",
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

			var out string
			switch format {
			case "csv":
				out, err = render.CSV(revision.Result.Sessions, revision.ProjectID, revision.RevisionID)
			case "json":
				var raw []byte
				raw, err = render.JSON(revision.Result, revision.ProjectID, revision.RevisionID, revision.InputHash)
				out = string(raw)
			case "svg":
				var svgErr error
				out, svgErr = selectSVGView(revision.Result, view)
				err = svgErr
			default:
				return fmt.Errorf("cli: unsupported render format %q (want csv, json, or svg)", format)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			return os.WriteFile(outPath, []byte(out), 0o644)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: csv, json, or svg")
	cmd.Flags().StringVar(&view, "view", "topology", "svg view: topology, rack/<rack_id>, or pair/<a>_<b> (only used with --format svg)")
	cmd.Flags().StringVar(&outPath, "out", "", "write output to this file instead of stdout")
	return cmd
}

// selectSVGView renders all svg artifacts for result and picks out the one
// named by view, mirroring the view dispatch in internal/api's svg handler.
func selectSVGView(result domain.AllocationResult, view string) (string, error) {
	topology, rackPanels, pairDetail, err := render.SVG(result)
	if err != nil {
		return "", err
	}

	var svg string
	switch {
	case view == "topology":
		svg = topology
	case strings.HasPrefix(view, "rack/"):
		svg = rackPanels[strings.TrimPrefix(view, "rack/")]
	case strings.HasPrefix(view, "pair/"):
		svg = pairDetail[strings.TrimPrefix(view, "pair/")]
	}
	if svg == "" {
		return "", fmt.Errorf("cli: no such svg view %q (want topology, rack/<rack_id>, or pair/<a>_<b>)", view)
	}
	return svg, nil
}

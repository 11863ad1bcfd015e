package cli

import (
	"fmt"

	"github.com/pht-ctoi/ctoistatus/internal/pipeline"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var (
		querySectors bool
		noSave       bool
		allColumns   bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the PHT CTOI status table",
		Long: `Download the TOI and CTOI catalogs (reusing cached copies according to the
cache policy), optionally recompute the sectors of every tracked target, join
everything with the paper table and write data/pht_ctoi_statuses.csv.

Examples:
  # Build from the stored sector summaries
  ctoistatus build

  # Recompute sectors first
  ctoistatus build --query-sectors

  # Keep every source column and do not write the table
  ctoistatus build --all-columns --no-save -j`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(GetConfig())
			res, err := p.CreateStatusTable(cmd.Context(), pipeline.Options{
				QuerySectors:       querySectors,
				Save:               !noSave,
				DefaultColumnsOnly: !allColumns,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				printResult(out, map[string]any{
					"run_id":  res.RunID,
					"rows":    len(res.Table.Rows),
					"columns": len(res.Table.Columns),
					"path":    res.Path,
				})
				return nil
			}
			fmt.Fprintf(out, "Built status table with %d rows and %d columns (run %s)\n", len(res.Table.Rows), len(res.Table.Columns), res.RunID)
			if res.Path != "" {
				fmt.Fprintf(out, "Saved to %s\n", res.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&querySectors, "query-sectors", false, "Recompute the sector summaries before building")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not write the status table")
	cmd.Flags().BoolVar(&allColumns, "all-columns", false, "Keep every source column instead of the default projection")
	return cmd
}

func newSectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "Recompute and store the sectors of the tracked CTOIs",
		Long: `Resolve the coordinates of every tracked CTOI target, compute the TESS
sectors they fall on and store the summary in the download directory so that
later builds can run offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pipeline.New(GetConfig()).DownloadSectors(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printResult(cmd.OutOrStdout(), map[string]string{"path": path})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved sector summaries to %s\n", path)
			}
			return nil
		},
	}
}

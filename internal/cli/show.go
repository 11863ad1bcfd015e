package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/pht-ctoi/ctoistatus/internal/statustable"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// tableColumns are printed by the table output; json and yaml print every column.
var tableColumns = []string{
	statustable.ColCTOI,
	statustable.ColTICID,
	statustable.ColTOI,
	statustable.ColDisposition,
	statustable.ColWTVSectors,
	statustable.ColHasTimeSeries,
	statustable.ColHasSpectroscopy,
	statustable.ColHasImaging,
}

var (
	falsePositiveColor = color.New(color.FgRed)
	confirmedColor     = color.New(color.FgGreen, color.Bold)
	candidateColor     = color.New(color.FgYellow)
)

func newShowCmd() *cobra.Command {
	var (
		query  statustable.Query
		output string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved status table",
		Long: `Print the status table written by the last build. The table is read from
disk; nothing is downloaded.

Examples:
  # CTOIs observed in sector 14
  ctoistatus show --sector 14

  # False positives as YAML
  ctoistatus show --disposition FP_CTOI -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				output = outputJSON
			}
			table, err := statusstore.New(GetConfig().DataDir).Load()
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), table.Select(query), output)
		},
	}
	cmd.Flags().IntVar(&query.Sector, "sector", 0, "Only CTOIs observed in this sector")
	cmd.Flags().StringVar(&query.Disposition, "disposition", "", "Only CTOIs with this disposition")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}

func printTable(w io.Writer, t *statustable.Table, output string) error {
	switch strings.ToLower(output) {
	case outputJSON:
		printResult(w, t.Objects())
	case outputYAML:
		b, err := yaml.Marshal(t.Objects())
		if err != nil {
			return fmt.Errorf("failed to format YAML output: %v", err)
		}
		fmt.Fprint(w, string(b))
	case outputTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(tableColumns, "\t"))
		for i := range t.Rows {
			values := t.Rows[i].Values(tableColumns)
			for j, col := range tableColumns {
				if col == statustable.ColDisposition {
					values[j] = colorDisposition(values[j])
				}
			}
			fmt.Fprintln(tw, strings.Join(values, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d CTOIs\n", len(t.Rows))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}

func colorDisposition(d string) string {
	switch d {
	case statustable.DispositionFalsePositive, "FP", "FA":
		return falsePositiveColor.Sprint(d)
	case "CP", "KP":
		return confirmedColor.Sprint(d)
	case "PC", "APC":
		return candidateColor.Sprint(d)
	default:
		return d
	}
}

package cli

import (
	"fmt"

	"github.com/pht-ctoi/ctoistatus/internal/publish"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Upload the saved status table to S3",
		Long: `Upload data/pht_ctoi_statuses.csv to <bucket>/<prefix>/pht_ctoi_statuses.csv.
The bucket, region and prefix come from the [publish] section of the
configuration; credentials come from the standard AWS environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetConfig()
			p, err := publish.NewPublisher(publish.Options{
				Bucket: c.Publish.Bucket,
				Region: c.Publish.Region,
				Prefix: c.Publish.Prefix,
			})
			if err != nil {
				return err
			}
			location, err := p.Publish(cmd.Context(), statusstore.New(c.DataDir).Path())
			if err != nil {
				return err
			}
			if jsonOutput {
				printResult(cmd.OutOrStdout(), map[string]string{"location": location})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", location)
			}
			return nil
		},
	}
}

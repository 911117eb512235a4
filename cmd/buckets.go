// Handles the "s3check buckets" command

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List every bucket the account owns",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := checkManager.NewRunner()
		if err := runner.ListBuckets(); err != nil {
			return errors.Wrap(err, "Bucket listing failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}

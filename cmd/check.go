// Handles the "s3check check" command

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the full connectivity check",
	Long: `Lists every bucket the account owns and, when S3_BUCKET_NAME is
configured, uploads one timestamped dummy object to it. Check is equivalent
to calling "s3check buckets" and "s3check upload", except that an upload
failure is reported without failing the whole run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := checkManager.NewRunner()
		if err := runner.Run(checkManager.Creds.BucketName); err != nil {
			return errors.Wrap(err, "Check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

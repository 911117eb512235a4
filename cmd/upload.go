// Handles the "s3check upload" command

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var uploadCmdConfig struct {
	bucket string
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload one timestamped dummy object",
	Long: `Uploads a single small text object to the configured bucket to
verify write access. The target bucket comes from S3_BUCKET_NAME unless
overridden with --bucket; unlike "s3check check", having no bucket at all is
an error here rather than a skip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket := uploadCmdConfig.bucket
		if bucket == "" {
			bucket = checkManager.Creds.BucketName
		}
		if bucket == "" {
			return errors.New("No bucket configured: set S3_BUCKET_NAME or pass --bucket")
		}

		runner := checkManager.NewRunner()
		if err := runner.UploadDummy(bucket); err != nil {
			return errors.Wrap(err, "Upload failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadCmdConfig.bucket, "bucket", "b", "", "target bucket, if different from S3_BUCKET_NAME")
}

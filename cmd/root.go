// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/qmm-dev/s3check/pkg/checkmgr"
	"github.com/spf13/cobra"
)

var envFile string

var checkManager *checkmgr.CheckManager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s3check",
	Short: "Verify S3 connectivity for a set of credentials",
	Long: `s3check resolves AWS credentials from a dotenv overlay file or the
process environment, lists the buckets the account owns, and optionally
uploads a single dummy object to verify write access.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		mgrArgs := map[string]interface{}{}
		if envFile != "" {
			mgrArgs["env-file"] = envFile
		}

		var err error
		checkManager, err = checkmgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize s3check manager: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		checkManager.Destroy()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if checkManager == nil || checkManager.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			checkManager.Logger.Error(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv overlay file (default is ./.env, then ~/.env)")
}

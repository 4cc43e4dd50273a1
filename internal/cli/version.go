package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asamgx/crunchsetup/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			fmt.Println(version.Full())
			return
		}
		fmt.Println(version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bvggrabber/bvg-cli/internal/format"
)

var (
	Version = "0.1.0"
	Commit  = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return format.JSON(cmd.OutOrStdout(), map[string]string{"version": Version, "commit": Commit})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bvg %s (%s)\n", Version, Commit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

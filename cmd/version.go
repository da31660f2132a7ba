package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bookmark %s (commit: %s, built: %s)\n", version, commit, date)
		if r := update.Check(context.Background(), version); r != nil {
			fmt.Printf("A newer release is available: %s\n", r.LatestVersion)
		}
	},
}

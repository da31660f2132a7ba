package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/config"
	"github.com/zhu327/bookmark/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the archive in a two-pane TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return tui.Run(cfg.ArchivePath())
	},
}

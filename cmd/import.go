package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/config"
	"github.com/zhu327/bookmark/internal/feed"
)

var (
	flagFeedURL   string
	flagFeedLimit int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Archive links from an RSS/Atom feed instead of the git diff",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := newLogger()
		ctx := context.Background()

		list, err := feed.Fetch(ctx, flagFeedURL, flagFeedLimit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			logger.Info("feed has no items", "feed", flagFeedURL)
			return nil
		}

		p, cleanup, err := newPipeline(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		p.Run(ctx, list)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagFeedURL, "feed", "", "feed URL (required)")
	importCmd.Flags().IntVar(&flagFeedLimit, "limit", 10, "maximum items to import")
	importCmd.MarkFlagRequired("feed")
}

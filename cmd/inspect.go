package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/archive"
	"github.com/zhu327/bookmark/internal/config"
	"github.com/zhu327/bookmark/internal/gitdiff"
	"github.com/zhu327/bookmark/internal/links"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the archive's categories in document order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store := archive.NewStore(cfg.ArchivePath())
		categories, err := store.Categories()
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			fmt.Println("No categories yet.")
			return nil
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	},
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Show links added by the last change, without archiving",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		diff, err := gitdiff.LastChangeDiff(context.Background(), cfg.RepoPath, cfg.InputFile)
		if err != nil {
			fmt.Printf("No diff available: %v\n", err)
			return nil
		}

		list := links.ExtractAdded(diff)
		if len(list) == 0 {
			fmt.Println("No new links in the last change.")
			return nil
		}
		for _, l := range list {
			fmt.Printf("%s\t%s\n", l.Title, l.URL)
		}
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/config"
	"github.com/zhu327/bookmark/internal/ledger"
)

var (
	flagHistoryLimit   int
	flagPruneOlderThan string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently archived links",
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := ledger.Open(config.LedgerPath())
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer led.Close()

		records, err := led.Recent(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("Nothing archived yet.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  [%s]  %s\n    %s\n", r.ArchivedAt.Format("2006-01-02 15:04"), r.Category, r.Title, r.URL)
		}
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old records from the ledger",
	Long: `Delete ledger records older than the given age. Pruned links will be
re-archived if they ever show up in a diff again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		retention, err := parseSince(flagPruneOlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}

		led, err := ledger.Open(config.LedgerPath())
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer led.Close()

		deleted, err := led.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}
		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d record(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.LedgerPath()
		led, err := ledger.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer led.Close()

		count, size, err := led.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Ledger: %s\n", dbPath)
		fmt.Printf("Archived links: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of records to show")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "365d", "age threshold (e.g., 90d, 720h)")
}

package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zhu327/bookmark/internal/ai"
	"github.com/zhu327/bookmark/internal/archive"
	"github.com/zhu327/bookmark/internal/config"
	"github.com/zhu327/bookmark/internal/fetch"
	"github.com/zhu327/bookmark/internal/gitdiff"
	"github.com/zhu327/bookmark/internal/ledger"
	"github.com/zhu327/bookmark/internal/links"
	"github.com/zhu327/bookmark/internal/pipeline"
)

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger()
	ctx := context.Background()

	diff, err := gitdiff.LastChangeDiff(ctx, cfg.RepoPath, cfg.InputFile)
	if err != nil {
		// No diff available is a clean outcome, not a crash.
		logger.Warn("no diff available", "file", cfg.InputFile, "err", err)
		return nil
	}

	list := links.ExtractAdded(diff)
	if len(list) == 0 {
		logger.Info("no new links in the last change", "file", cfg.InputFile)
		return nil
	}

	p, cleanup, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	p.Force = flagForce
	p.Run(ctx, list)
	return nil
}

// newPipeline wires the pieces shared by the root and import commands.
// The ledger is best-effort: without it runs still work, they just lose
// dedup across runs.
func newPipeline(cfg *config.Config, logger *log.Logger) (*pipeline.Pipeline, func(), error) {
	llm, err := ai.New(&cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring LLM client: %w", err)
	}

	p := &pipeline.Pipeline{
		Fetcher: fetch.New(cfg),
		AI:      llm,
		Archive: archive.NewStore(cfg.ArchivePath()),
		Log:     logger,
	}

	cleanup := func() {}
	led, err := ledger.Open(config.LedgerPath())
	if err != nil {
		logger.Warn("ledger unavailable, dedup disabled", "err", err)
	} else {
		p.Tracker = led
		cleanup = func() { led.Close() }
	}
	return p, cleanup, nil
}

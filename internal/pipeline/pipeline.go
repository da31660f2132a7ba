// Package pipeline drives one processing run: fetch, summarize,
// classify and archive each link in turn. Links are processed
// sequentially by design; classification depends on the category list,
// which the previous insertion may have extended.
package pipeline

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/zhu327/bookmark/internal/archive"
	"github.com/zhu327/bookmark/internal/fetch"
	"github.com/zhu327/bookmark/internal/ledger"
	"github.com/zhu327/bookmark/internal/links"
)

// AI is the summarize/classify surface the pipeline needs.
type AI interface {
	Summarize(ctx context.Context, content string) (string, error)
	Classify(ctx context.Context, title, summary string, categories []string) (string, error)
}

// Archiver locates or creates category sections and inserts entries.
type Archiver interface {
	Categories() ([]string, error)
	Insert(archive.Entry) error
}

// Tracker remembers which URLs were archived on earlier runs.
type Tracker interface {
	Seen(url string) (bool, error)
	Mark(ledger.Record) error
}

type Pipeline struct {
	Fetcher fetch.Fetcher
	AI      AI
	Archive Archiver
	Tracker Tracker // optional; nil disables dedup
	Log     *log.Logger
	Force   bool // archive links even when the tracker has seen them
}

// Result counts per-link outcomes of a run.
type Result struct {
	Archived int
	Skipped  int
	Failed   int
}

// Run processes the links in order. Any per-link failure is logged and
// skipped; the loop always continues to the next link.
func (p *Pipeline) Run(ctx context.Context, list []links.Link) Result {
	var res Result

	categories, err := p.Archive.Categories()
	if err != nil {
		// Archive may not exist yet; the writer creates it on insert.
		p.Log.Warn("reading categories", "err", err)
	}
	p.Log.Info("processing links", "count", len(list), "known_categories", len(categories))

	for i, link := range list {
		logger := p.Log.With("link", i+1, "title", link.Title, "url", link.URL)

		if p.Tracker != nil && !p.Force {
			seen, err := p.Tracker.Seen(link.URL)
			if err != nil {
				logger.Warn("ledger lookup failed", "err", err)
			} else if seen {
				logger.Info("already archived, skipping")
				res.Skipped++
				continue
			}
		}

		content, err := p.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			logger.Error("fetch failed", "err", err)
			res.Failed++
			continue
		}

		summary, err := p.AI.Summarize(ctx, content)
		if err != nil {
			logger.Error("summarize failed", "err", err)
			res.Failed++
			continue
		}

		category, err := p.AI.Classify(ctx, link.Title, summary, categories)
		if err != nil {
			logger.Error("classify failed", "err", err)
			res.Failed++
			continue
		}

		entry := archive.Entry{
			Category: category,
			Title:    link.Title,
			URL:      link.URL,
			Summary:  summary,
		}
		if err := p.Archive.Insert(entry); err != nil {
			logger.Error("archive insert failed", "err", err)
			res.Failed++
			continue
		}

		if p.Tracker != nil {
			if err := p.Tracker.Mark(ledger.Record{URL: link.URL, Title: link.Title, Category: category}); err != nil {
				logger.Warn("ledger update failed", "err", err)
			}
		}

		// The next link's classify call must see a category this insert
		// may have created.
		if !slices.Contains(categories, category) {
			categories = append(categories, category)
		}

		res.Archived++
		logger.Info("archived", "category", category)
	}

	p.Log.Info("run complete", "archived", res.Archived, "skipped", res.Skipped, "failed", res.Failed)
	return res
}

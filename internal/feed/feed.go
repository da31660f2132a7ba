// Package feed turns an RSS/Atom feed into link records, as an
// alternative source to the git diff.
package feed

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/zhu327/bookmark/internal/links"
)

// Fetch parses the feed at url and returns its items as links, feed
// order preserved. Items without a link are dropped.
func Fetch(ctx context.Context, url string, limit int) ([]links.Link, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", url, err)
	}

	var out []links.Link
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = item.Link
		}
		out = append(out, links.Link{Title: title, URL: item.Link})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

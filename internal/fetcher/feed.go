package fetcher

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// ExpandFeed resolves an RSS/Atom feed URL into the entry links it
// carries, in feed order. limit caps the number of links; limit <= 0
// means no cap.
func ExpandFeed(ctx context.Context, feedURL string, limit int) ([]string, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = defaultUserAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetcher: failed to parse feed %q: %w", feedURL, err)
	}

	var urls []string
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if limit > 0 && len(urls) >= limit {
			break
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("fetcher: feed %q has no entry links", feedURL)
	}
	return urls, nil
}

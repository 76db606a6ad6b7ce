package fetcher

import (
	"context"
	"errors"
)

// Article is the extracted, readable body of a news page.
type Article struct {
	Title string
	URL   string
	Text  string
}

// Fetcher retrieves one article and extracts its readable text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Article, error)
}

// ErrNoContent is returned when a page yields no article text after every
// extraction strategy.
var ErrNoContent = errors.New("fetcher: no article text found")

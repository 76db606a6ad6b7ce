package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/ryotako/newsum/internal/retry"
)

const defaultUserAgent = "newsum/1.0 (+https://github.com/ryotako/newsum)"

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 10 << 20

// HTTPFetcher downloads a page and extracts the readable article text,
// preferring readability and falling back to a goquery pass over the
// article/paragraph elements.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retry     retry.Config
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: 15 * time.Second},
		userAgent: defaultUserAgent,
		retry:     retry.DefaultConfig(),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetcher: invalid URL %q: %w", pageURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("fetcher: unsupported URL scheme %q", parsed.Scheme)
	}

	var body string
	err = retry.WithBackoff(ctx, f.retry, func(ctx context.Context) error {
		html, err := f.download(ctx, pageURL)
		if err != nil {
			return err
		}
		body = html
		return nil
	})
	if err != nil {
		return nil, err
	}

	title, text := extract(body, parsed)
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	return &Article{Title: title, URL: pageURL, Text: text}, nil
}

func (f *HTTPFetcher) download(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetcher: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetcher: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetcher: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("fetcher: failed to read response: %w", err)
	}
	return string(data), nil
}

// extract returns the page title and readable body text. Readability does
// the heavy lifting; when it finds nothing the goquery fallback collects
// text from article and paragraph elements after dropping chrome.
func extract(html string, pageURL *url.URL) (title, text string) {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err == nil {
		title = strings.TrimSpace(article.Title)
		text = strings.TrimSpace(article.TextContent)
	}
	if text != "" {
		return title, text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return title, ""
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	doc.Find("script, style, nav, header, footer, aside, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	var parts []string
	collect := func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	doc.Find("article").Each(collect)
	if len(parts) == 0 {
		doc.Find("p").Each(collect)
	}
	return title, strings.Join(parts, "\n")
}

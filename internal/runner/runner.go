package runner

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/ryotako/newsum/internal/exporter"
	"github.com/ryotako/newsum/internal/fetcher"
	"github.com/ryotako/newsum/internal/summarizer"
)

// Placeholder values for articles that could not be processed.
const (
	failedTitle    = "(Failed to fetch)"
	failedSummary  = "Could not process the article."
	noSummaryValue = "Could not generate summary."
)

// Runner drives the per-article pipeline: fetch, summarize, print, export.
// Articles are processed strictly in input order, one at a time, and a
// failure on one article never aborts the rest of the batch.
type Runner struct {
	fetcher    fetcher.Fetcher
	capability summarizer.Capability
	tokenizer  summarizer.SentenceTokenizer
	opts       summarizer.Options
	outputDir  string
	format     string

	out             io.Writer
	articleProgress summarizer.Progress
	chunkProgress   summarizer.Progress
}

func New(f fetcher.Fetcher, model summarizer.Capability, tok summarizer.SentenceTokenizer, opts summarizer.Options, outputDir, format string) *Runner {
	return &Runner{
		fetcher:    f,
		capability: model,
		tokenizer:  tok,
		opts:       opts,
		outputDir:  outputDir,
		format:     format,
		out:        os.Stdout,
	}
}

// SetOutput redirects the console blocks, for tests.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// SetProgress installs optional progress callbacks for the article loop
// and the per-article chunk loop.
func (r *Runner) SetProgress(articles, chunks summarizer.Progress) {
	r.articleProgress = articles
	r.chunkProgress = chunks
}

// Run processes every URL in order. It always completes the whole batch;
// per-article failures are logged and reflected in that article's output.
func (r *Runner) Run(ctx context.Context, urls []string) {
	runID := uuid.NewString()[:8]
	log.Printf("[run %s] Processing %d article(s)", runID, len(urls))

	for i, u := range urls {
		res := r.processArticle(ctx, u)
		exporter.Console(r.out, res)

		if r.outputDir != "" {
			path, err := exporter.Export(r.outputDir, res, r.format)
			if err != nil {
				if errors.Is(err, exporter.ErrUnsupportedFormat) {
					log.Printf("Unsupported export format: %s", r.format)
				} else {
					log.Printf("WARNING: export failed for %s: %v", u, err)
				}
			} else {
				log.Printf("[run %s] Exported summary to %s", runID, path)
			}
		}

		if r.articleProgress != nil {
			r.articleProgress(i+1, len(urls))
		}
	}
}

func (r *Runner) processArticle(ctx context.Context, url string) exporter.Result {
	article, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Printf("Error fetching or parsing article from URL %q: %v", url, err)
		return exporter.Result{Title: failedTitle, URL: url, Summary: failedSummary}
	}

	summary, err := summarizer.Summarize(ctx, r.capability, r.tokenizer, article.Text, r.opts, r.chunkProgress)
	if err != nil || summary == "" {
		summary = noSummaryValue
	}

	return exporter.Result{Title: article.Title, URL: url, Summary: summary}
}

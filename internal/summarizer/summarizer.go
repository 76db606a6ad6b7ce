package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Capability is the external abstractive summarization model, treated as a
// black box: text plus length bounds in, one summary out. Implementations
// must be deterministic (no sampling). It is always passed explicitly so
// tests can substitute a fake.
type Capability interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Options control summary length bounds and the word budget per chunk.
type Options struct {
	MaxLength int
	MinLength int
	ChunkSize int
}

// DefaultOptions mirrors the tool's flag defaults.
func DefaultOptions() Options {
	return Options{MaxLength: 150, MinLength: 50, ChunkSize: 500}
}

// Progress is an optional per-chunk callback, invoked with the number of
// chunks handled so far and the total. A nil Progress is ignored, keeping
// the pipeline free of any console dependency.
type Progress func(done, total int)

// ErrNoSummary is returned by Summarize when the single whole-text
// summarization call fails.
var ErrNoSummary = errors.New("summarizer: no summary produced")

// summarizeChunk runs the capability once on a single chunk. An empty or
// whitespace-only result counts as a failure.
func summarizeChunk(ctx context.Context, model Capability, chunk string, opts Options) (string, error) {
	summary, err := model.Summarize(ctx, chunk, opts.MaxLength, opts.MinLength)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", errors.New("empty summary returned")
	}
	return summary, nil
}

// SummarizeChunks summarizes every chunk in order and joins the surviving
// partial summaries with a newline. A failing chunk is logged as a warning
// with its 1-based index and contributes nothing; if every chunk fails the
// result is the empty string.
func SummarizeChunks(ctx context.Context, model Capability, chunks []string, opts Options, progress Progress) string {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := summarizeChunk(ctx, model, chunk, opts)
		if err != nil {
			log.Printf("WARNING: Chunk %d summarization failed: %v", i+1, err)
		} else {
			summaries = append(summaries, summary)
		}
		if progress != nil {
			progress(i+1, len(chunks))
		}
	}
	return strings.Join(summaries, "\n")
}

// Summarize produces one summary for text, splitting along sentence
// boundaries first when the whitespace word count exceeds opts.ChunkSize.
//
// The two failure modes are intentionally distinct: if the text is short
// and the single summarization call fails, Summarize returns a non-nil
// error wrapping ErrNoSummary; if the text was chunked and every chunk
// failed, Summarize returns ("", nil). Callers that only care about "did I
// get usable text" must check both.
func Summarize(ctx context.Context, model Capability, tok SentenceTokenizer, text string, opts Options, progress Progress) (string, error) {
	if len(strings.Fields(text)) > opts.ChunkSize {
		chunks := ChunkSentences(tok, text, opts.ChunkSize)
		return SummarizeChunks(ctx, model, chunks, opts, progress), nil
	}
	summary, err := summarizeChunk(ctx, model, text, opts)
	if err != nil {
		log.Printf("Summarization failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrNoSummary, err)
	}
	return summary, nil
}

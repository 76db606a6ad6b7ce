package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/schollz/progressbar/v3"

	"github.com/ryotako/newsum/internal/config"
	"github.com/ryotako/newsum/internal/fetcher"
	"github.com/ryotako/newsum/internal/runner"
	"github.com/ryotako/newsum/internal/summarizer"
)

func main() {
	var (
		model        string
		outputDir    string
		exportFormat string
		maxLength    int
		minLength    int
		chunkSize    int
		feedLimit    int
		schedule     string
	)
	configPath := flag.String("config", "", "path to optional YAML config file")
	feed := flag.Bool("feed", false, "treat input URLs as RSS/Atom feeds and expand them")
	flag.StringVar(&model, "m", "", "summarization model (default: facebook/bart-large-cnn)")
	flag.StringVar(&model, "model", "", "summarization model (default: facebook/bart-large-cnn)")
	flag.StringVar(&outputDir, "o", "", "directory to export summaries")
	flag.StringVar(&outputDir, "output-dir", "", "directory to export summaries")
	flag.StringVar(&exportFormat, "f", "", "export format: txt, md or json (default: txt)")
	flag.StringVar(&exportFormat, "export-format", "", "export format: txt, md or json (default: txt)")
	flag.IntVar(&maxLength, "max-length", 0, "max summary length (default: 150)")
	flag.IntVar(&minLength, "min-length", 0, "min summary length (default: 50)")
	flag.IntVar(&chunkSize, "chunk-size", 0, "chunk size for long texts, in words (default: 500)")
	flag.IntVar(&feedLimit, "feed-limit", 0, "max articles taken per feed (default: 10)")
	flag.StringVar(&schedule, "schedule", "", "cron expression: re-run the batch on this schedule")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Explicitly set flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m", "model":
			cfg.Model = model
		case "o", "output-dir":
			cfg.OutputDir = outputDir
		case "f", "export-format":
			cfg.ExportFormat = exportFormat
		case "max-length":
			cfg.MaxLength = maxLength
		case "min-length":
			cfg.MinLength = minLength
		case "chunk-size":
			cfg.ChunkSize = chunkSize
		case "feed-limit":
			cfg.FeedLimit = feedLimit
		case "schedule":
			cfg.Schedule = schedule
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	urls, err := resolveURLs(ctx, flag.Args(), *feed, cfg.FeedLimit)
	if err != nil {
		log.Fatalf("Failed to resolve input URLs: %v", err)
	}

	hf := summarizer.NewHFSummarizer(cfg.Model, cfg.APIToken)
	if err := hf.Load(ctx); err != nil {
		log.Printf("Failed to load summarization model %q: %v", cfg.Model, err)
		fmt.Println("Could not load summarization model. Exiting.")
		os.Exit(1)
	}
	tok, err := summarizer.NewPunktTokenizer()
	if err != nil {
		log.Fatalf("Failed to initialize sentence tokenizer: %v", err)
	}

	opts := summarizer.Options{
		MaxLength: cfg.MaxLength,
		MinLength: cfg.MinLength,
		ChunkSize: cfg.ChunkSize,
	}
	r := runner.New(fetcher.NewHTTPFetcher(), hf, tok, opts, cfg.OutputDir, cfg.ExportFormat)
	r.SetProgress(barProgress("Processing articles"), barProgress("Summarizing chunks"))

	if cfg.Schedule == "" {
		r.Run(ctx, urls)
		return
	}

	// Scheduled mode: run now, then on every cron tick until signalled.
	r.Run(ctx, urls)

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Println("Cron triggered, reprocessing URL list...")
		r.Run(ctx, urls)
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Printf("Scheduled summarization with cron expression: %s", cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	cancel()
	c.Stop()
}

// resolveURLs turns the positional arguments into the list of article URLs
// to process: a list of URLs, a single .txt file of URLs (one per line), or
// an interactively prompted URL when no arguments are given. With feed
// expansion on, every input URL is treated as an RSS/Atom feed; a feed that
// fails to expand is skipped with a warning.
func resolveURLs(ctx context.Context, args []string, expandFeeds bool, feedLimit int) ([]string, error) {
	urls, err := inputURLs(args)
	if err != nil {
		return nil, err
	}
	if !expandFeeds {
		return urls, nil
	}

	var expanded []string
	for _, u := range urls {
		links, err := fetcher.ExpandFeed(ctx, u, feedLimit)
		if err != nil {
			log.Printf("WARNING: %v", err)
			continue
		}
		expanded = append(expanded, links...)
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("no article URLs after feed expansion")
	}
	return expanded, nil
}

func inputURLs(args []string) ([]string, error) {
	if len(args) == 1 && strings.HasSuffix(args[0], ".txt") {
		return readURLFile(args[0])
	}
	if len(args) > 0 {
		return args, nil
	}

	fmt.Print("Please enter the URL of a news article: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return nil, fmt.Errorf("no URL entered")
	}
	url := strings.TrimSpace(scanner.Text())
	if url == "" {
		return nil, fmt.Errorf("no URL entered")
	}
	return []string{url}, nil
}

func readURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file %s: %w", path, err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("URL file %s contains no URLs", path)
	}
	return urls, nil
}

// barProgress adapts a terminal progress bar to the pipeline's callback
// contract. The bar is created on the first tick of each loop, when the
// total is known.
func barProgress(desc string) summarizer.Progress {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil || done <= 1 {
			bar = progressbar.Default(int64(total), desc)
		}
		_ = bar.Set(done)
	}
}

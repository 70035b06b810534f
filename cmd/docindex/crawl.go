package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/corpus"
	"github.com/fwojciec/docindex/crawl"
)

// Run executes the crawl command. Each enabled source is crawled and its
// corpus partition committed before the next source starts.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	exclude, err := parseSources(c.Exclude)
	if err != nil {
		return err
	}
	ignore, err := docindex.NewURLFilter(append(slices.Clone(ignorePatterns), c.Ignore...)...)
	if err != nil {
		return err
	}

	sources := c.sources()
	if len(sources) == 0 {
		return docindex.Errorf(docindex.EINVALID, "no sources enabled")
	}

	for _, source := range sources {
		if slices.Contains(exclude, source) {
			return docindex.Errorf(docindex.EINVALID, "source %s is both crawled and excluded", source)
		}
	}

	for _, source := range sources {
		if err := c.crawlSource(deps, source, ignore, exclude); err != nil {
			return err
		}
	}
	logSelectorUses(deps)
	return nil
}

// selectorUsage is implemented by registries that count which link
// selector each page was handed to.
type selectorUsage interface {
	Uses() map[string]int
}

func logSelectorUses(deps *Dependencies) {
	counter, ok := deps.Crawler.LinkSelectors.(selectorUsage)
	if !ok {
		return
	}
	uses := counter.Uses()
	attrs := make([]any, 0, 2*len(uses))
	for _, name := range slices.Sorted(maps.Keys(uses)) {
		attrs = append(attrs, name, uses[name])
	}
	deps.Logger.Info("link selectors", attrs...)
}

func (c *CrawlCmd) sources() []docindex.Source {
	var sources []docindex.Source
	if c.Blender {
		sources = append(sources, docindex.SourceBlender)
	}
	if c.AfterEffects {
		sources = append(sources, docindex.SourceAfterEffects)
	}
	return sources
}

func (c *CrawlCmd) crawlSource(deps *Dependencies, source docindex.Source, ignore *docindex.URLFilter, exclude []docindex.Source) error {
	ctx := deps.Ctx

	crawler := *deps.Crawler
	crawler.Ignore = ignore

	builder := newBuilder(deps, source, c.ChunkSize, exclude)

	start := seeds[source]
	if deps.Sitemaps != nil {
		start = expandSeeds(ctx, deps, start, ignore)
	}

	fmt.Fprintf(deps.Stderr, "Crawling %s (%d seeds)...\n", source, len(start))
	result, err := crawler.Crawl(ctx, start, builder.Add, progressPrinter(deps))
	if err != nil {
		return fmt.Errorf("crawl %s: %w", source, err)
	}
	if result.Tripped {
		fmt.Fprintf(deps.Stderr, "Stopped %s after %d failed pages\n", source, result.Failed)
	}

	committed, err := builder.Commit(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	stats := builder.Stats()
	fmt.Fprintf(deps.Stdout, "%s: %d pages fetched, %d extracted, %d skipped, %d failed\n",
		source, result.Processed, result.Extracted, result.Skipped, result.Failed)
	printCommit(deps, source, stats, committed)
	return nil
}

// expandSeeds adds the sitemap URLs under each seed. A seed whose sitemap
// cannot be read is crawled on its own.
func expandSeeds(ctx context.Context, deps *Dependencies, start []string, ignore *docindex.URLFilter) []string {
	expanded := slices.Clone(start)
	for _, seed := range start {
		urls, err := deps.Sitemaps.DiscoverURLs(ctx, seed, ignore)
		if err != nil {
			continue
		}
		for _, u := range urls {
			if !slices.Contains(expanded, u) {
				expanded = append(expanded, u)
			}
		}
	}
	return expanded
}

func progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d] %s\n", event.Processed, crawl.TruncateURL(event.URL, 80))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d] failed %s: %s\n", event.Processed, crawl.TruncateURL(event.URL, 80), docindex.ErrorMessage(event.Error))
		}
	}
}

func newBuilder(deps *Dependencies, source docindex.Source, chunkSize int, exclude []docindex.Source) *corpus.Builder {
	b := corpus.NewBuilder(source, deps.Embedder, deps.Store)
	b.ChunkSize = chunkSize
	b.Exclude = exclude
	b.Tokens = deps.Tokens
	b.Logger = deps.Logger
	if deps.Pace != 0 {
		b.Pace = deps.Pace
	}
	return b
}

func printCommit(deps *Dependencies, source docindex.Source, stats corpus.Stats, committed *corpus.CommitResult) {
	fmt.Fprintf(deps.Stdout, "%s: %d chunks, %d embedded, %d dropped", source, stats.Chunks, stats.Embedded, stats.Dropped)
	if deps.Tokens != nil {
		fmt.Fprintf(deps.Stdout, ", %d tokens", stats.Tokens)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Corpus saved: %d items (%d new, %d kept)\n", committed.Total, committed.Built, committed.Kept)
}

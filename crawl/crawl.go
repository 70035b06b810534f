// Package crawl walks documentation sites breadth-first from a set of seed
// URLs, hands every extracted page to a callback and follows in-scope links
// up to the configured depth, page and error limits.
package crawl

import (
	"cmp"
	"context"
	"net/url"
	"slices"

	"github.com/fwojciec/docindex"
)

// Crawl defaults.
const (
	DefaultMaxPages    = 100
	DefaultMaxDepth    = 4
	DefaultMaxErrors   = 5
	DefaultConcurrency = 1
)

// Frontier sizing for the visited set prefilter.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Crawler orchestrates the crawling of documentation sites.
type Crawler struct {
	Fetcher       docindex.Fetcher
	Extractor     docindex.PageExtractor
	LinkSelectors docindex.LinkSelectorRegistry
	RateLimiter   docindex.DomainLimiter

	// Ignore rejects discovered links after scope filtering. Seeds are
	// never filtered.
	Ignore *docindex.URLFilter

	// Concurrency is the number of pages fetched at once.
	Concurrency int

	// MaxPages caps the number of pages fetched in a run.
	MaxPages int

	// MaxDepth caps the number of link hops from a seed.
	MaxDepth int

	// MaxErrors trips the circuit breaker once that many pages failed.
	MaxErrors int
}

// Result holds the outcome of a crawl run.
type Result struct {
	Processed int // pages dispatched for fetching
	Extracted int // pages handed to the PageFunc
	Skipped   int // pages declined by the extractor
	Failed    int // pages that could not be fetched or extracted

	// Tripped is set when the run stopped at the error limit.
	Tripped bool
}

// PageFunc receives each extracted page. Returning an error stops the crawl
// and Crawl returns that error.
type PageFunc func(ctx context.Context, page *docindex.Page) error

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	URL       string
	Depth     int
	Processed int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressTripped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl processes seeds and every in-scope page reachable from them.
//
// A link is in scope when it is on a seed's host under that seed's
// directory; ignore patterns are applied after the scope check. Each URL is
// fetched at most once per run. Failed pages are not retried, and once
// MaxErrors pages have failed no new pages are dispatched.
//
// If ctx is canceled, Crawl stops dispatching and returns the partial
// result together with the context error.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, fn PageFunc, progress ProgressFunc) (*Result, error) {
	var ss scopes
	for _, seed := range seeds {
		s, err := newScope(seed)
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, seed := range seeds {
		frontier.Push(docindex.Link{URL: seed})
	}

	w := &walk{
		crawler:   c,
		frontier:  frontier,
		scopes:    ss,
		fn:        fn,
		progress:  progress,
		maxPages:  orDefault(c.MaxPages, DefaultMaxPages),
		maxDepth:  orDefault(c.MaxDepth, DefaultMaxDepth),
		maxErrors: orDefault(c.MaxErrors, DefaultMaxErrors),
	}
	err := w.run(ctx, orDefault(c.Concurrency, DefaultConcurrency))
	w.report(ProgressEvent{Type: ProgressFinished, Processed: w.result.Processed})
	return &w.result, err
}

// fetchResult is the outcome of processing one link on a worker.
type fetchResult struct {
	link  docindex.Link
	page  *docindex.Page
	links []docindex.DiscoveredLink
	err   error
}

// process fetches and extracts one link. Outbound links are collected only
// when extraction succeeded or declined the page, highest priority first.
func (c *Crawler) process(ctx context.Context, link docindex.Link) fetchResult {
	result := fetchResult{link: link}

	if c.RateLimiter != nil {
		u, err := url.Parse(link.URL)
		if err != nil {
			result.err = docindex.Errorf(docindex.EINVALID, "invalid URL %q", link.URL)
			return result
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := c.Fetcher.Fetch(ctx, link.URL)
	if err != nil {
		result.err = err
		return result
	}

	page, err := c.Extractor.Extract(html, link.URL)
	if err != nil {
		result.err = err
		return result
	}
	result.page = page

	if c.LinkSelectors != nil {
		if selector := c.LinkSelectors.GetForHTML(html); selector != nil {
			if links, err := selector.ExtractLinks(html, link.URL); err == nil {
				slices.SortStableFunc(links, func(a, b docindex.DiscoveredLink) int {
					return cmp.Compare(b.Priority, a.Priority)
				})
				result.links = links
			}
		}
	}
	return result
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

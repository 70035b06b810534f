package crawl

import (
	"context"

	"github.com/fwojciec/docindex"
	"golang.org/x/sync/errgroup"
)

// walk is the state of one crawl run. It is owned by the coordinator
// goroutine; workers only see links and send back fetchResults.
type walk struct {
	crawler  *Crawler
	frontier *Frontier
	scopes   scopes
	fn       PageFunc
	progress ProgressFunc

	maxPages  int
	maxDepth  int
	maxErrors int

	result  Result
	pending int
	stopped bool
	fnErr   error
}

// run dispatches links to a pool of workers until the frontier drains, a
// limit is reached or ctx is canceled. Results of fetches still in flight at
// cancellation are discarded.
func (w *walk) run(ctx context.Context, concurrency int) error {
	workCh := make(chan docindex.Link)
	resultCh := make(chan fetchResult)

	g, gctx := errgroup.WithContext(ctx)
	for range concurrency {
		g.Go(func() error {
			for link := range workCh {
				res := w.crawler.process(gctx, link)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	var next *docindex.Link
loop:
	for {
		if ctx.Err() != nil {
			break
		}
		if w.stopped {
			next = nil
		}
		if next == nil && !w.stopped && w.result.Processed < w.maxPages {
			if link, ok := w.frontier.Pop(); ok {
				next = &link
			}
		}
		if next == nil && w.pending == 0 {
			break
		}

		// A nil channel disables the dispatch case.
		var dispatch chan<- docindex.Link
		var link docindex.Link
		if next != nil {
			dispatch = workCh
			link = *next
		}

		select {
		case <-ctx.Done():
			break loop
		case dispatch <- link:
			next = nil
			w.pending++
			w.result.Processed++
			w.report(ProgressEvent{Type: ProgressStarted, URL: link.URL, Depth: link.Depth})
		case res := <-resultCh:
			w.pending--
			w.handle(ctx, res)
		}
	}

	close(workCh)
	for range resultCh {
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return w.fnErr
}

// handle records one fetch result and enqueues its in-scope links.
func (w *walk) handle(ctx context.Context, res fetchResult) {
	switch {
	case res.err != nil:
		w.result.Failed++
		w.report(ProgressEvent{Type: ProgressFailed, URL: res.link.URL, Depth: res.link.Depth, Error: res.err})
		if w.result.Failed >= w.maxErrors && !w.result.Tripped {
			w.result.Tripped = true
			w.stopped = true
			w.report(ProgressEvent{Type: ProgressTripped, URL: res.link.URL})
		}
		return
	case res.page == nil:
		w.result.Skipped++
		w.report(ProgressEvent{Type: ProgressSkipped, URL: res.link.URL, Depth: res.link.Depth})
	default:
		if w.fnErr == nil && w.fn != nil {
			if err := w.fn(ctx, res.page); err != nil {
				w.fnErr = err
				w.stopped = true
			}
		}
		w.result.Extracted++
		w.report(ProgressEvent{Type: ProgressCompleted, URL: res.link.URL, Depth: res.link.Depth})
	}

	depth := res.link.Depth + 1
	if w.stopped || depth > w.maxDepth {
		return
	}
	for _, l := range res.links {
		if !w.scopes.contains(l.URL) || !w.crawler.Ignore.Match(l.URL) {
			continue
		}
		w.frontier.Push(docindex.Link{URL: l.URL, Depth: depth})
	}
}

func (w *walk) report(event ProgressEvent) {
	if w.progress == nil {
		return
	}
	event.Processed = w.result.Processed
	w.progress(event)
}

package docindex

import "context"

// Link is a queued crawl locator and its hop distance from the seeds.
type Link struct {
	URL   string
	Depth int
}

// URLFrontier is a breadth-first crawl queue with a run-scoped visited set.
type URLFrontier interface {
	// Push queues a link. Returns false if the URL was already seen.
	Push(link Link) bool

	// Pop returns the oldest queued link.
	// Returns false if the frontier is empty.
	Pop() (Link, bool)

	// Len returns the number of queued links.
	Len() int

	// Seen returns true if the URL has been queued before.
	Seen(url string) bool
}

// DomainLimiter paces requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/bloom"
)

var _ docindex.URLFrontier = (*Frontier)(nil)

// Frontier is a FIFO crawl queue with a run-scoped visited set.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Set
	queue []docindex.Link
	head  int
}

// NewFrontier creates a new Frontier sized for n expected URLs with the
// given false positive rate for the visited set's prefilter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewSet(n, fpRate),
	}
}

// Push queues a link at the back of the frontier.
// Returns false if the URL has already been seen. URL fragments are
// stripped first, so URLs differing only by fragment are duplicates.
func (f *Frontier) Push(link docindex.Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	link.URL = stripFragment(link.URL)
	if !f.seen.Add(link.URL) {
		return false
	}
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (docindex.Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return docindex.Link{}, false
	}
	link := f.queue[f.head]
	f.queue[f.head] = docindex.Link{}
	f.head++
	if f.head == len(f.queue) {
		f.queue, f.head = f.queue[:0], 0
	}
	return link, true
}

// Len returns the number of queued links.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Seen returns true if the URL has been queued before.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(stripFragment(rawURL))
}

func stripFragment(u string) string {
	if idx := strings.IndexByte(u, '#'); idx != -1 {
		return u[:idx]
	}
	return u
}

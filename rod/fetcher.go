// Package rod implements docindex.Fetcher with a headless Chrome for
// documentation sites that render their content with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

var errClosed = docindex.Errorf(docindex.EINVALID, "fetcher closed")

// expandShadowRoots copies the content of open shadow roots into their hosts
// so that it survives HTML serialization. Nested roots are expanded first.
const expandShadowRoots = `() => {
	const expand = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				expand(el.shadowRoot);
				el.insertAdjacentHTML('beforeend', el.shadowRoot.innerHTML);
			}
		}
	};
	expand(document);
}`

var _ docindex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	timeout   time.Duration
	userAgent string
	manager   []ManagerOption
}

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) FetcherOption {
	return func(c *fetcherConfig) {
		c.userAgent = ua
	}
}

// WithManagerOptions configures the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) FetcherOption {
	return func(c *fetcherConfig) {
		c.manager = append(c.manager, opts...)
	}
}

// NewFetcher launches a headless Chrome and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.manager...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager, timeout: cfg.timeout, userAgent: cfg.userAgent}, nil
}

// Fetch navigates to url and returns the rendered HTML, with open shadow
// roots serialized inline.
//
// A page load exceeding the fetch timeout is reported as EUNAVAILABLE
// wrapping context.DeadlineExceeded.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, release, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", docindex.WrapError(docindex.EUNAVAILABLE, err, "open page for %s", url)
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", docindex.WrapError(docindex.EUNAVAILABLE, err, "set user agent")
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(fetchCtx)

	fail := func(err error, step string) (string, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if ctxErr := fetchCtx.Err(); ctxErr != nil {
			return "", docindex.WrapError(docindex.EUNAVAILABLE, ctxErr, "timed out fetching %s", url)
		}
		return "", docindex.WrapError(docindex.EUNAVAILABLE, err, "%s %s", step, url)
	}

	if err := page.Navigate(url); err != nil {
		return fail(err, "navigate to")
	}
	if err := page.WaitLoad(); err != nil {
		return fail(err, "wait for")
	}
	if _, err := page.Eval(expandShadowRoots); err != nil {
		return fail(err, "expand shadow roots of")
	}

	html, err := page.HTML()
	if err != nil {
		return fail(err, "serialize")
	}
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

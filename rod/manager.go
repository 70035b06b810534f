package rod

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome and replaces it after a number of
// pages. Chrome's memory baseline keeps growing over a long crawl even with
// pages closed, so a fresh process is started periodically.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int
	logger   *slog.Logger

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	inFlight map[*rod.Browser]int
	retired  []retiredBrowser
	recycles int
	closed   bool
}

// retiredBrowser is a replaced browser that still serves in-flight pages.
type retiredBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages served before the browser is
// recycled.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithLogger logs browser recycling.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager launches a headless Chrome.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		logger:   slog.New(slog.DiscardHandler),
		inFlight: make(map[*rod.Browser]int),
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Acquire returns the browser to open the next page in, recycling it first
// when the page budget is spent. The returned release func must be called
// once the page is closed. A recycled browser is shut down after its last
// page is released.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, errClosed
	}
	if bm.pages >= bm.maxPages {
		bm.recycleBrowser()
	}

	browser := bm.browser
	bm.pages++
	bm.inFlight[browser]++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(browser) })
	}
	return browser, release, nil
}

// Recycles returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts down every browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	for _, r := range bm.retired {
		shutdown(r.browser, r.launcher)
	}
	bm.retired = nil

	err := shutdown(bm.browser, bm.launcher)
	bm.browser = nil
	bm.launcher = nil
	return err
}

// release decrements the in-flight count of browser and shuts it down if it
// was retired and is now idle.
func (bm *BrowserManager) release(browser *rod.Browser) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bm.inFlight[browser]--
	if bm.inFlight[browser] > 0 {
		return
	}
	delete(bm.inFlight, browser)

	for i, r := range bm.retired {
		if r.browser == browser {
			shutdown(r.browser, r.launcher)
			bm.retired = append(bm.retired[:i], bm.retired[i+1:]...)
			return
		}
	}
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// recycleBrowser starts a fresh browser and retires the old one. If the
// launch fails the old browser keeps serving.
// Must be called with mu held.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher

	if err := bm.launchBrowser(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		bm.logger.Warn("browser recycle failed", "pages", bm.pages, "err", err)
		return
	}

	if bm.inFlight[oldBrowser] > 0 {
		bm.retired = append(bm.retired, retiredBrowser{browser: oldBrowser, launcher: oldLauncher})
	} else {
		shutdown(oldBrowser, oldLauncher)
	}
	bm.recycles++
	bm.logger.Info("browser recycled", "pages", bm.pages, "recycles", bm.recycles)
	bm.pages = 0
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}

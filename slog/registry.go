package slog

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.LinkSelectorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a LinkSelectorRegistry, counts which selector each
// page was handed to and logs the choice at debug level. A site whose pages
// keep falling back to the generic selector shows up in Uses.
type LoggingRegistry struct {
	next     docindex.LinkSelectorRegistry
	detector docindex.FrameworkDetector
	logger   *slog.Logger

	mu   sync.Mutex
	uses map[string]int
}

// NewLoggingRegistry creates a new LoggingRegistry. If detector is not nil,
// debug lines also carry the detected framework.
func NewLoggingRegistry(next docindex.LinkSelectorRegistry, detector docindex.FrameworkDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{
		next:     next,
		detector: detector,
		logger:   logger,
		uses:     make(map[string]int),
	}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(framework docindex.Framework) docindex.LinkSelector {
	return r.next.Get(framework)
}

// GetForHTML delegates to the wrapped registry and records the selector
// returned. Detection for the log line only runs when debug is enabled.
func (r *LoggingRegistry) GetForHTML(html string) docindex.LinkSelector {
	begin := time.Now()
	selector := r.next.GetForHTML(html)

	name := "(none)"
	if selector != nil {
		name = selector.Name()
	}
	r.mu.Lock()
	r.uses[name]++
	r.mu.Unlock()

	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		return selector
	}
	attrs := []any{"selector", name, "duration", time.Since(begin)}
	if r.detector != nil {
		framework := string(r.detector.Detect(html))
		if framework == "" {
			framework = "(unknown)"
		}
		attrs = append([]any{"framework", framework}, attrs...)
	}
	r.logger.Debug("link selector", attrs...)
	return selector
}

// Uses returns how many pages each selector was chosen for, by selector
// name.
func (r *LoggingRegistry) Uses() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.uses)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(framework docindex.Framework, selector docindex.LinkSelector) {
	r.next.Register(framework, selector)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []docindex.Framework {
	return r.next.List()
}

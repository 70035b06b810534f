package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.PageExtractor = (*LoggingPageExtractor)(nil)

// LoggingPageExtractor wraps a PageExtractor and logs skip decisions at info
// level and failures at warn level.
type LoggingPageExtractor struct {
	next   docindex.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next docindex.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingPageExtractor) Extract(markup, locator string) (page *docindex.Page, err error) {
	defer func(begin time.Time) {
		switch {
		case err != nil:
			e.logger.Warn("extract failed", "locator", locator, "duration", time.Since(begin), "err", err)
		case page == nil:
			e.logger.Info("page skipped", "locator", locator, "duration", time.Since(begin))
		default:
			e.logger.Debug("page extracted",
				"locator", locator,
				"title", page.Title,
				"chars", len(page.Content),
				"duration", time.Since(begin),
			)
		}
	}(time.Now())
	return e.next.Extract(markup, locator)
}

// Package slog provides decorators that log calls to docindex services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher. Successful fetches are logged at debug
// level; throttling and server failures at warn so they show without
// --verbose.
type LoggingFetcher struct {
	next   docindex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docindex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if err != nil {
			attrs = append(attrs, "code", docindex.ErrorCode(err), "err", err)
			if wait := docindex.RetryAfter(err); wait > 0 {
				attrs = append(attrs, "retry_after", wait)
			}
		}
		f.logger.Log(ctx, fetchLevel(err), "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func fetchLevel(err error) slog.Level {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return slog.LevelDebug
	}
	switch docindex.ErrorCode(err) {
	case docindex.ERATELIMIT, docindex.EUNAVAILABLE:
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

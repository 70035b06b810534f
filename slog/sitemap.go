package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each seed expansion.
// A seed without a sitemap is expected and logged at debug level.
type LoggingSitemapService struct {
	next   docindex.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next docindex.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docindex.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		switch {
		case err == nil:
			s.logger.InfoContext(ctx, "sitemap discovery", "seed", baseURL, "urls", len(urls), "duration", time.Since(begin))
		case docindex.ErrorCode(err) == docindex.ENOTFOUND:
			s.logger.DebugContext(ctx, "no sitemap", "seed", baseURL)
		default:
			s.logger.WarnContext(ctx, "sitemap discovery", "seed", baseURL, "code", docindex.ErrorCode(err), "err", err)
		}
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService and logs queries and loads.
type LoggingSearchService struct {
	next   docindex.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next docindex.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service.
func (s *LoggingSearchService) Search(ctx context.Context, query string, limit int) (results []docindex.SearchResult, err error) {
	defer func(begin time.Time) {
		var top float32
		if len(results) > 0 {
			top = results[0].Score
		}
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"results", len(results),
			"top_score", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}

// Load delegates to the wrapped service.
func (s *LoggingSearchService) Load(ctx context.Context, path string) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("corpus reload",
			"path", path,
			"items", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, path)
}

// All delegates to the wrapped service.
func (s *LoggingSearchService) All() ([]*docindex.Item, error) {
	return s.next.All()
}

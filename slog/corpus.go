package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.CorpusStore = (*LoggingCorpusStore)(nil)

// LoggingCorpusStore wraps a CorpusStore and logs loads and saves.
type LoggingCorpusStore struct {
	next   docindex.CorpusStore
	logger *slog.Logger
}

// NewLoggingCorpusStore creates a new LoggingCorpusStore.
func NewLoggingCorpusStore(next docindex.CorpusStore, logger *slog.Logger) *LoggingCorpusStore {
	return &LoggingCorpusStore{next: next, logger: logger}
}

// Load delegates to the wrapped store.
func (s *LoggingCorpusStore) Load(ctx context.Context) (items []*docindex.Item, err error) {
	defer func(begin time.Time) {
		s.logger.Info("corpus load",
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store.
func (s *LoggingCorpusStore) Save(ctx context.Context, items []*docindex.Item) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("corpus save",
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, items)
}

// SaveSnapshot delegates to the wrapped store.
func (s *LoggingCorpusStore) SaveSnapshot(ctx context.Context, items []*docindex.Item) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("corpus snapshot",
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveSnapshot(ctx, items)
}

// RemoveSnapshot delegates to the wrapped store.
func (s *LoggingCorpusStore) RemoveSnapshot(ctx context.Context) (err error) {
	defer func() {
		s.logger.Debug("corpus snapshot removed", "err", err)
	}()
	return s.next.RemoveSnapshot(ctx)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder and logs each provider call.
type LoggingEmbedder struct {
	next   docindex.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docindex.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"chars", len(text),
			"dims", len(vec),
			"duration", time.Since(begin),
			"code", docindex.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

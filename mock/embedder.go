package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docindex.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

package docindex

import "context"

// Embedder produces an embedding vector for a piece of text.
//
// Provider implementations report throttling as ERATELIMIT (with
// Error.RetryAfter when the provider sent a hint) and server-side failures
// as EUNAVAILABLE so that callers can choose a retry delay.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

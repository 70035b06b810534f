package docindex

import "context"

// TokenCounter reports the size of item content in model tokens. Counts are
// informational: they feed build statistics and never gate indexing.
type TokenCounter interface {
	// CountTokens returns the number of tokens in text, zero for "".
	CountTokens(ctx context.Context, text string) (int, error)
}

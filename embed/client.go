// Package embed wraps embedding providers with truncation and a bounded
// retry policy, and memoizes one provider client per API key.
package embed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Defaults for Client.
const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 5

	// DefaultMaxChars keeps input safely under an 8k-token model limit.
	DefaultMaxChars = 32000

	DefaultBaseDelay  = time.Second
	DefaultFixedDelay = time.Second
)

var _ docindex.Embedder = (*Client)(nil)

// Client embeds text through a provider, retrying failed calls.
//
// Rate-limited calls wait the provider's retry-after hint, or an exponential
// delay when none was given. Server failures wait an exponential delay. Any
// other failure waits FixedDelay. After MaxRetries retries the last error is
// returned wrapped as EEXHAUSTED.
type Client struct {
	Embedder docindex.Embedder

	MaxRetries int
	MaxChars   int
	BaseDelay  time.Duration
	FixedDelay time.Duration

	// Logger receives one warning per retry. Nil disables logging.
	Logger *slog.Logger
}

// NewClient returns a Client for embedder using default policy.
func NewClient(embedder docindex.Embedder) *Client {
	return &Client{Embedder: embedder}
}

// Embed truncates text and embeds it, retrying per the client's policy.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "text required")
	}
	text = Truncate(text, orDefault(c.MaxChars, DefaultMaxChars))

	maxRetries := orDefault(c.MaxRetries, DefaultMaxRetries)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vec, err := c.Embedder.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil, ctx.Err()
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}

		delay := c.retryDelay(err, attempt+1)
		if c.Logger != nil {
			c.Logger.Warn("embed retry",
				"attempt", attempt+2,
				"max_attempts", maxRetries+1,
				"code", docindex.ErrorCode(err),
				"delay", delay,
				"err", err,
			)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, docindex.WrapError(docindex.EEXHAUSTED, lastErr, "embedding failed after %d attempts", maxRetries+1)
}

// retryDelay returns the wait before retry number n (1-based).
func (c *Client) retryDelay(err error, n int) time.Duration {
	switch docindex.ErrorCode(err) {
	case docindex.ERATELIMIT:
		if d := docindex.RetryAfter(err); d > 0 {
			return d
		}
		return backoff(orDefault(c.BaseDelay, DefaultBaseDelay), n)
	case docindex.EUNAVAILABLE:
		return backoff(orDefault(c.BaseDelay, DefaultBaseDelay), n)
	default:
		return orDefault(c.FixedDelay, DefaultFixedDelay)
	}
}

// backoff doubles base n times.
func backoff(base time.Duration, n int) time.Duration {
	return base << n
}

// Truncate returns text cut to at most maxChars runes.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
